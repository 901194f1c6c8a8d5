package stats

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/sales-stats/pkg/adapters"
	"github.com/de-tools/sales-stats/pkg/models/api"
	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/rs/zerolog"
)

type Handler struct {
	reports stats.Service
}

func NewHandler(reports stats.Service) *Handler {
	return &Handler{reports: reports}
}

func (h *Handler) Greeting(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.Message{Message: "Hola"})
}

func (h *Handler) GetWeeklyProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.WeeklyProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapProductSalesDomainToApi(rows))
}

func (h *Handler) GetQuotationAmounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.QuotationRanking(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSalespersonTotalsDomainToApi(rows))
}

func (h *Handler) GetMonthlyTotalAmounts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.MonthlyWarehouseTotals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapWarehouseTotalsDomainToApi(rows))
}

// writeError maps ERP failures to 502 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	status := http.StatusInternalServerError
	if errors.Is(err, dataset.ErrDataSource) {
		status = http.StatusBadGateway
	}

	logger.Error().
		Err(err).
		Int("status", status).
		Msg("failed to build report")

	writeJSON(w, r, status, api.Error{Error: http.StatusText(status)})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}
