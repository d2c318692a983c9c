// Command datahugger is the CLI binding for the core, grounded on
// cobra/pflag usage patterns from the teacher's go.mod (rclone itself
// builds its CLI on cobra, though its cmd/ package was trimmed from this
// workspace — see DESIGN.md). Argument surface, env-var plumbing and
// progress rendering are exactly the concerns spec.md §6 assigns to the
// binding layer, not the core.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ropensci/datahugger-go/internal/backend"
	"github.com/ropensci/datahugger-go/internal/config"
	"github.com/ropensci/datahugger-go/internal/downloader"
	"github.com/ropensci/datahugger-go/internal/httpapi"
	"github.com/ropensci/datahugger-go/internal/progress"
	"github.com/ropensci/datahugger-go/internal/resolver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "datahugger",
		Short:         "Download a dataset from a research-data repository URL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDownloadCmd())
	return root
}

func newDownloadCmd() *cobra.Command {
	var limit int
	var to string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Resolve a dataset URL, crawl its file tree, and download every file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runDownload(cmd.Context(), args[0], limit, to); err != nil {
				fmt.Fprintf(os.Stderr, "download failed: %v\n", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of concurrent file downloads (0 = unlimited)")
	cmd.Flags().StringVarP(&to, "to", "t", ".", "destination directory")
	return cmd
}

func runDownload(ctx context.Context, rawURL string, limit int, to string) error {
	opts := config.FromEnvironment()
	client := httpapi.New(opts)

	res, err := resolver.Resolve(ctx, client, rawURL)
	if err != nil {
		return err
	}
	if res.Advisory != "" {
		fmt.Fprintf(os.Stderr, "\033[33mwarning: %s\033[0m\n", res.Advisory)
	}

	b, ok := backend.New(res.Backend, res.Args)
	if !ok {
		return fmt.Errorf("no backend registered for %q", res.Backend)
	}

	reporter := progress.NewMPB()
	dataset := downloader.Dataset{Backend: b, RecordID: res.RecordID}
	return downloader.DownloadWithValidation(ctx, client, dataset, to, reporter, int64(limit))
}
