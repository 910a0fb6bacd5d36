package main

import (
	"fmt"
	"io"
	"path"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build and dependency versions",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout(), short)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the release")

	return cmd
}

func printVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version)
		return
	}
	fmt.Fprintf(w, "microfun %s (%s, built %s)\n", version, commit, date)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// Storage and transport libraries, for bug reports.
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, dep := range info.Deps {
		switch dep.Path {
		case "go.etcd.io/bbolt", "github.com/aws/aws-sdk-go-v2/service/s3", "github.com/gorilla/websocket":
			fmt.Fprintf(w, "  %-8s %s\n", path.Base(dep.Path)+":", dep.Version)
		}
	}
}
