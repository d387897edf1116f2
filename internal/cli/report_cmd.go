package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sla.service/internal/config"
	"sla.service/internal/core"
	"sla.service/internal/core/model"
	"sla.service/internal/ports/source"
)

type reportOptions struct {
	workspace string
	filter    model.Filter
	url       string
	token     string
	watch     time.Duration
}

func newReportCmd(cfg config.Config) *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the SLA report of a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.filter.Validate(); err != nil {
				return err
			}

			view := core.NewReportView(core.NewReportService(source.NewHTTPSource(opts.url, opts.token)))
			if opts.watch <= 0 {
				report, _, err := view.Refresh(cmd.Context(), opts.workspace, opts.filter)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderReport(report))
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchReport(ctx, view, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.workspace, "workspace", "", "Workspace ID")
	cmd.Flags().StringVar(&opts.filter.WorkerID, "worker", "", "Only this worker (default all workers)")
	cmd.Flags().StringVar(&opts.filter.From, "from", "", "First work date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.filter.To, "to", "", "Last work date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.url, "url", cfg.RecordSourceURL, "Base URL of the SLA API")
	cmd.Flags().StringVar(&opts.token, "token", os.Getenv("SLA_TOKEN"), "Session token (defaults to $SLA_TOKEN)")
	cmd.Flags().DurationVar(&opts.watch, "watch", 0, "Refresh interval; 0 renders once")
	_ = cmd.MarkFlagRequired("workspace")

	return cmd
}

// watchReport refreshes on every tick until ctx ends. Refreshes may overlap;
// only responses the view applies are rendered.
func watchReport(ctx context.Context, view *core.ReportView, opts reportOptions, out io.Writer) error {
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	refresh := func() {
		defer wg.Done()
		report, applied, err := view.Refresh(ctx, opts.workspace, opts.filter)
		if err != nil {
			if ctx.Err() == nil {
				log.Warn().Err(err).Msg("Report refresh failed")
			}
			return
		}
		if !applied {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprint(out, RenderReport(report))
	}

	ticker := time.NewTicker(opts.watch)
	defer ticker.Stop()

	wg.Add(1)
	go refresh()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case <-ticker.C:
			wg.Add(1)
			go refresh()
		}
	}
}
