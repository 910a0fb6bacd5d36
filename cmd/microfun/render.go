package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/elishacook/microfun/internal/config"
	"github.com/elishacook/microfun/internal/demo"
	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/frame"
	"github.com/elishacook/microfun/pkg/render"
	"github.com/elishacook/microfun/pkg/snapshot"
	"github.com/elishacook/microfun/pkg/vdom"
)

func renderCmd() *cobra.Command {
	var (
		pretty  bool
		page    bool
		restore bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the demo view as HTML",
		Long: `Mount the demo against an HTML writer and print its first frame.

Examples:
  microfun render
  microfun render --pretty
  microfun render --page --restore > index.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), cfg, cmd.OutOrStdout(), renderOptions{
				pretty:  pretty,
				page:    page,
				restore: restore,
			})
		},
	}

	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the output")
	cmd.Flags().BoolVar(&page, "page", false, "Wrap the view in a complete HTML document")
	cmd.Flags().BoolVar(&restore, "restore", false, "Render the last snapshot instead of the initial model")

	return cmd
}

type renderOptions struct {
	pretty  bool
	page    bool
	restore bool
}

func runRender(ctx context.Context, cfg *config.Config, w io.Writer, opts renderOptions) error {
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}

	initial := demo.Initial()
	if opts.restore {
		store, err := snapshot.Open(ctx, cfg)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
			initial = restoreModel(ctx, store, initial, logger)
		}
	}

	rc := render.RendererConfig{Pretty: opts.pretty, Indent: "  "}
	var target flow.Target = render.NewWriter(w, rc)
	if opts.page {
		r := render.NewRenderer(rc)
		target = flow.TargetFunc(func(tree *vdom.Node) error {
			return r.RenderPage(w, render.PageData{
				Body:   tree,
				Title:  cfg.Name,
				Styles: []string{demo.Styles},
			})
		})
	}

	var result drawResult
	app := demo.New(ctx, nil)
	mounted := flow.Mount(target, initial, app.View, nil,
		flow.WithClock(frame.Immediate{}),
		flow.WithObserver(&result),
		flow.WithLogger(logger),
	)
	mounted.Close()
	return result.err
}

// drawResult keeps the error of the first draw.
type drawResult struct {
	flow.NopObserver
	err  error
	done bool
}

func (d *drawResult) Flushed(_ time.Duration, err error) {
	if !d.done {
		d.err, d.done = err, true
	}
}
