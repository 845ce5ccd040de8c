package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
	"github.com/custodia-labs/docdex-cli/internal/logger"
)

var scanWatch bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Index new and changed documents in the watched folder",
	Long: `Walks the configured folder and indexes every supported document.
Unchanged files (same content hash) are skipped; edited files replace
their previous version. With --watch, docdex keeps running and rescans
whenever a document changes.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "keep watching the folder and rescan on changes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if ingestor == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	if scanWatch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	cmd.Println("Scanning folder...")
	stats, err := scanWithProgress(ctx, cmd)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	cmd.Printf("Scan complete: %d processed, %d skipped, %d errors\n",
		stats.Processed, stats.Skipped, stats.Errors)

	if !scanWatch {
		return nil
	}
	return watchAndRescan(ctx, cmd)
}

// scanWithProgress runs a scan while reporting progress on a ticker.
func scanWithProgress(ctx context.Context, cmd *cobra.Command) (domain.ScanStats, error) {
	var stats domain.ScanStats
	done := make(chan error, 1)
	go func() {
		s, scanErr := ingestor.Scan(ctx)
		stats = s
		done <- scanErr
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-done:
			return stats, err
		case <-ticker.C:
			status := ingestor.Status()
			if status.Running && status.Stats.Processed > lastCount {
				cmd.Printf("\rProcessing... %d documents", status.Stats.Processed)
				lastCount = status.Stats.Processed
			}
		}
	}
}

// watchAndRescan blocks on filesystem events, triggering a rescan per
// burst of changes. Events arriving during a scan are absorbed by the
// single-scan guard.
func watchAndRescan(ctx context.Context, cmd *cobra.Command) error {
	if fileSource == nil {
		return errors.New("file source not configured")
	}

	changes, err := fileSource.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	cmd.Println("Watching for changes. Press Ctrl+C to stop.")

	// Debounce: editors often fire several events per save.
	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case path, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Change detected: %s", path)
			if timer == nil {
				timer = time.NewTimer(time.Second)
			} else {
				timer.Reset(time.Second)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			stats, err := ingestor.Scan(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("Rescan failed: %v", err)
				continue
			}
			if stats.Processed > 0 || stats.Errors > 0 {
				cmd.Printf("Rescan: %d processed, %d skipped, %d errors\n",
					stats.Processed, stats.Skipped, stats.Errors)
			}
		}
	}
}
