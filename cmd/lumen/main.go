package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lumenerrors "github.com/lumen-ui/lumen/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦ ╦╔╦╗╔═╗╔╗╔
  ║  ║ ║║║║║╣ ║║║
  ╩═╝╚═╝╩ ╩╚═╝╝╚╝
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Fine-grained reactive rendering for Go",
		Long: `Lumen is a reactive component engine for Go.

Components declare state, computed values, and methods; the engine
tracks exactly which values each render reads, and re-renders only
what changed. Trees diff with keyed reconciliation and stream to
connected clients over WebSocket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		createCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var lerr *lumenerrors.LumenError
		if errors.As(err, &lerr) {
			fmt.Fprintln(os.Stderr, lerr.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the Lumen ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
