package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	jsonRPCPath    = "/jsonrpc"
	defaultTimeout = 30 * time.Second
)

type Settings struct {
	Timeout  time.Duration
	RetryMax int
	Logger   *zerolog.Logger
}

// Client reads datasets from an Odoo server through its JSON-RPC endpoint.
// It logs in lazily on the first fetch and reuses the user id afterwards.
type Client struct {
	profile Profile
	http    *retryablehttp.Client
	seq     atomic.Int64

	logins singleflight.Group
	mu     sync.Mutex
	uid    int64
}

func NewClient(profile Profile, settings Settings) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = settings.RetryMax
	httpClient.HTTPClient.Timeout = settings.Timeout
	if settings.Timeout == 0 {
		httpClient.HTTPClient.Timeout = defaultTimeout
	}
	httpClient.Logger = nil
	if settings.Logger != nil {
		httpClient.Logger = &leveledLogger{logger: settings.Logger}
	}

	return &Client{
		profile: profile,
		http:    httpClient,
	}
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"data"`
}

func (e *rpcError) Error() string {
	if e.Data.Message != "" {
		return fmt.Sprintf("odoo rpc error %d: %s: %s", e.Code, e.Message, e.Data.Message)
	}
	return fmt.Sprintf("odoo rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) GetDataset(
	ctx context.Context,
	entity string,
	expr filter.Expr,
	fields []string,
) (*store.RecordSet, error) {
	logger := zerolog.Ctx(ctx)

	if err := expr.Validate(); err != nil {
		return nil, dataset.NewError(entity, err)
	}

	uid, err := c.login(ctx)
	if err != nil {
		return nil, dataset.NewError(entity, err)
	}

	start := time.Now()
	var rows []store.Record
	err = c.call(ctx, "object", "execute_kw", []any{
		c.profile.Database,
		uid,
		c.profile.Password,
		entity,
		"search_read",
		[]any{expr.Domain()},
		map[string]any{"fields": fields},
	}, &rows)
	if err != nil {
		return nil, dataset.NewError(entity, err)
	}

	result := &store.RecordSet{Entity: entity, Fields: fields, Rows: make([]store.Record, 0, len(rows))}
	for _, row := range rows {
		result.Rows = append(result.Rows, dataset.NormalizeRelations(row))
	}

	logger.Debug().
		Str("entity", entity).
		Str("filter", expr.String()).
		Int("rows", len(result.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched dataset from odoo")

	return result, nil
}

// login returns the cached user id or authenticates once for all concurrent
// callers. The shared attempt outlives a cancelled caller and is bounded by the
// transport timeout instead.
func (c *Client) login(ctx context.Context) (int64, error) {
	c.mu.Lock()
	uid := c.uid
	c.mu.Unlock()
	if uid != 0 {
		return uid, nil
	}

	result := c.logins.DoChan("login", func() (any, error) {
		return c.authenticate(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("login failed: %w", ctx.Err())
	case res := <-result:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int64), nil
	}
}

func (c *Client) authenticate(ctx context.Context) (int64, error) {
	c.mu.Lock()
	cached := c.uid
	c.mu.Unlock()
	if cached != 0 {
		return cached, nil
	}

	var uid any
	err := c.call(ctx, "common", "login", []any{c.profile.Database, c.profile.Username, c.profile.Password}, &uid)
	if err != nil {
		return 0, fmt.Errorf("login failed: %w", err)
	}

	// Odoo answers `false` on bad credentials.
	id, ok := uid.(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("login failed: invalid credentials for %s on %s", c.profile.Username, c.profile.Database)
	}

	c.mu.Lock()
	c.uid = int64(id)
	c.mu.Unlock()

	zerolog.Ctx(ctx).Info().
		Str("profile", c.profile.Name).
		Int64("uid", int64(id)).
		Msg("authenticated against odoo")

	return int64(id), nil
}

func (c *Client) call(ctx context.Context, service, method string, args []any, out any) error {
	logger := zerolog.Ctx(ctx)

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params:  rpcParams{Service: service, Method: method, Args: args},
		ID:      c.seq.Add(1),
	})
	if err != nil {
		return fmt.Errorf("failed to encode rpc request: %w", err)
	}

	url := strings.TrimSuffix(c.profile.URL, "/") + jsonRPCPath
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close rpc response body")
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status from odoo: %s", resp.Status)
	}

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if decoded.Error != nil {
		return decoded.Error
	}
	if err := json.Unmarshal(decoded.Result, out); err != nil {
		return fmt.Errorf("failed to decode rpc result: %w", err)
	}
	return nil
}

// leveledLogger routes retryablehttp's logs through zerolog.
type leveledLogger struct {
	logger *zerolog.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}
