package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/sheet-viz/internal/adapter"
	"github.com/MKhiriev/sheet-viz/internal/config"
	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/models"
	"github.com/spf13/cobra"
)

// AdapterFactory builds the server adapter once flags are parsed.
type AdapterFactory func(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (adapter.ServerAdapter, error)

type App struct {
	cfg        config.ClientConfig
	buildInfo  models.AppBuildInfo
	newAdapter AdapterFactory

	// server is set by the root PersistentPreRunE.
	server adapter.ServerAdapter

	out    io.Writer
	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, newAdapter AdapterFactory, logger *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is nil")
	}
	if newAdapter == nil {
		newAdapter = adapter.NewHTTPServerAdapter
	}

	return &App{
		cfg:        *cfg,
		buildInfo:  buildInfo,
		newAdapter: newAdapter,
		out:        os.Stdout,
		logger:     logger,
	}, nil
}

// Run executes os.Args. SIGINT and SIGTERM cancel the in-flight request.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.Execute(ctx, os.Args[1:])
}

// Execute runs a single command line against a fresh command tree.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(a.out)
	return root.ExecuteContext(ctx)
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sheet-viz",
		Short:         "sheet-viz command-line client",
		Long:          `Upload spreadsheets, inspect parsed rows and insights, and browse chart history on a sheet-viz server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipsServer(cmd) {
				return nil
			}

			server, err := a.newAdapter(a.cfg.Adapter, a.cfg.App, a.logger)
			if err != nil {
				return fmt.Errorf("create server adapter: %w", err)
			}
			a.server = server
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfg.Adapter.HTTPAddress, "address", "a", a.cfg.Adapter.HTTPAddress, "server address")
	flags.StringVarP(&a.cfg.Adapter.Token, "token", "t", a.cfg.Adapter.Token, "bearer token printed by login")
	flags.DurationVar(&a.cfg.Adapter.RequestTimeout, "timeout", a.cfg.Adapter.RequestTimeout, "request timeout")
	flags.StringVarP(&a.cfg.App.HashKey, "key", "k", a.cfg.App.HashKey, "key for the HashSHA256 upload header")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.profileCommand(),
		a.uploadCommand(),
		a.filesCommand(),
		a.rowsCommand(),
		a.downloadCommand(),
		a.deleteCommand(),
		a.insightsCommand(),
		a.chartCommand(),
		a.historyCommand(),
		a.adminCommand(),
		a.versionCommand(),
	)

	return root
}

// skipsServer reports whether cmd is a cobra built-in that never talks to the
// server.
func skipsServer(cmd *cobra.Command) bool {
	if cmd.Name() == "help" {
		return true
	}
	return cmd.HasParent() && cmd.Parent().Name() == "completion"
}
