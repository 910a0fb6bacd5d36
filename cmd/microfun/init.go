package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/elishacook/microfun/internal/config"
	"github.com/elishacook/microfun/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default config file",
		Long: `Write microfun.json (or .yaml/.toml with --format) with every
setting at its default.

Examples:
  microfun init
  microfun init --format=toml ./app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, format, force)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "File format: json, yaml or toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func runInit(dir, format string, force bool) error {
	switch format {
	case "json", "yaml", "toml":
	default:
		return errors.New("E122").WithDetail("--format must be json, yaml or toml")
	}
	path := filepath.Join(dir, "microfun."+format)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New("E122").
			WithDetail(path + " already exists").
			WithSuggestion("Pass --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New("E120").Wrap(err)
	}
	if err := config.New().SaveTo(path); err != nil {
		return err
	}
	success("Wrote %s", path)
	info("Edit it, then run 'microfun serve'")
	return nil
}
