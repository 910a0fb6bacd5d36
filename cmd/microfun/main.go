package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/elishacook/microfun/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if !isTerminal(os.Stderr) {
		errors.DisableColors()
	}

	rootCmd := &cobra.Command{
		Use:   "microfun",
		Short: "Unidirectional data flow for Go views",
		Long: `microfun mounts a model, a view and a render target and keeps
them in sync: actions produce new models, renders are coalesced into
frames, and async tasks dispatch their results back into the model.

The bundled demo (a counter and a todo list) can be served live over
a WebSocket or rendered once as HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: microfun.{json,yaml,toml} in the working directory)")

	rootCmd.AddCommand(
		serveCmd(),
		renderCmd(),
		initCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func paint(code, text string) string {
	if !isTerminal(os.Stdout) {
		return text
	}
	return code + text + "\033[0m"
}
