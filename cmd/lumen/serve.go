package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/internal/config"
	"github.com/lumen-ui/lumen/pkg/live"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live server",
		Long: `Start the live server for the current project.

The server renders the root component for page requests and streams
patches to connected clients over WebSocket.

Examples:
  lumen serve
  lumen serve --port=8080
  lumen serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from lumen.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from lumen.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		errorMsg("no project found")
		info("Run 'lumen create .' to initialize one here")
		return err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	server := live.NewServer(cfg, welcomeComponent(), live.WithLogger(logger))

	// Serve until interrupted.
	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	printBanner()
	success("Serving at %s", cfg.URL())
	info("Press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

// buildLogger constructs the zap logger described by the log section.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Log.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// welcomeComponent is the built-in root rendered until a project wires
// its own components in.
func welcomeComponent() *vdom.Definition {
	return &vdom.Definition{
		Name:  "welcome",
		State: func() map[string]any { return map[string]any{"count": 0} },
		Methods: map[string]vdom.MethodFunc{
			"increment": func(ctx vdom.Ctx, args ...any) any {
				ctx.Set("count", ctx.Get("count").(int)+1)
				return nil
			},
		},
		Computed: map[string]func(ctx vdom.Ctx) any{
			"label": func(ctx vdom.Ctx) any {
				n := ctx.Get("count").(int)
				if n == 1 {
					return "1 click"
				}
				return fmt.Sprintf("%d clicks", n)
			},
		},
		Render: func(ctx vdom.Ctx) *vdom.VNode {
			return el.Main(el.ID("app"),
				el.H1(el.Text("Lumen is running")),
				el.P(el.Text("Edit your root component to replace this page.")),
				el.Button(
					el.On("click", ctx.Get("increment")),
					el.Dyn(ctx.Get("label").(string)),
				),
			)
		},
	}
}
