package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/sales-stats/pkg/runtime/terminal/commands"
	"github.com/de-tools/sales-stats/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-stats/pkg/services/stats"
	"github.com/spf13/cobra"
)

// ServiceFactory builds the report service from the --config and --profile flags.
// An empty profile keeps the one from the config.
type ServiceFactory func(ctx context.Context, configPath, profile string) (stats.Service, error)

// CLI represents the command-line interface
type CLI struct {
	factory    ServiceFactory
	output     io.Writer
	configPath string
	profile    string
	format     string
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Factory ServiceFactory
	Output  io.Writer
	Args    []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		factory: opts.Factory,
		output:  opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	if opts.Args != nil {
		cli.rootCmd.SetArgs(opts.Args)
	}
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) service(ctx context.Context) (stats.Service, error) {
	if cli.factory == nil {
		return nil, fmt.Errorf("no report service configured")
	}
	return cli.factory(ctx, cli.configPath, cli.profile)
}

func (cli *CLI) reporter() (*export.Reporter, error) {
	format, err := export.ParseFormat(cli.format)
	if err != nil {
		return nil, err
	}
	return export.NewReporter(cli.output, format), nil
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stats",
		Short:         "Sales statistics from the ERP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the application config file")
	cmd.PersistentFlags().StringVarP(&cli.profile, "profile", "p", "", "ERP profile to read from")
	cmd.PersistentFlags().StringVarP(&cli.format, "format", "f", string(export.FormatTable), "Output format: table or json")

	cmd.AddCommand(commands.NewProductsCmd(cli.service, cli.reporter))
	cmd.AddCommand(commands.NewQuotationsCmd(cli.service, cli.reporter))
	cmd.AddCommand(commands.NewWarehousesCmd(cli.service, cli.reporter))
	cmd.AddCommand(commands.NewAllCmd(cli.service, cli.reporter))

	return cmd
}
