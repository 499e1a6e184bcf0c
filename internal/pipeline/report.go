package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"folio/internal/logging"
	"folio/internal/textutil"
)

// Report aggregates the outcomes of one sweep over the books directory.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Count returns how many results carry the given status.
func (r Report) Count(status Status) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}

// Summary renders a one-line human summary of the sweep.
func (r Report) Summary() string {
	return fmt.Sprintf("%d processed, %d skipped, %d failed in %s",
		r.Count(StatusProcessed),
		r.Count(StatusSkippedAlreadyDone)+r.Count(StatusSkippedNoMetadata)+r.Count(StatusSkippedNoImages),
		r.Count(StatusFailed),
		r.Finished.Sub(r.Started).Round(time.Millisecond))
}

// ProcessAll sweeps every subfolder of the books directory through the
// pipeline. Folders are visited in natural order so runs are deterministic;
// one folder's failure never stops the sweep.
func (p *Processor) ProcessAll(ctx context.Context) (Report, error) {
	report := Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}
	logger := p.logger.With(logging.String("run_id", report.RunID))

	booksDir := p.cfg.Paths.BooksDir
	entries, err := os.ReadDir(booksDir)
	if err != nil {
		report.Finished = time.Now()
		return report, fmt.Errorf("read books directory %s: %w", booksDir, err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		folders = append(folders, entry.Name())
	}
	sort.Slice(folders, func(i, j int) bool {
		return textutil.NaturalLess(folders[i], folders[j])
	})

	logger.Info("starting sweep", logging.Int("folders", len(folders)))
	for _, name := range folders {
		if err := ctx.Err(); err != nil {
			report.Finished = time.Now()
			return report, err
		}
		result := p.Process(ctx, filepath.Join(booksDir, name))
		if result.Status == StatusFailed {
			logger.Error("book failed",
				logging.String("book_id", result.BookID),
				logging.Error(result.Err))
		}
		report.Results = append(report.Results, result)
	}

	report.Finished = time.Now()
	logger.Info("sweep complete", logging.String("summary", report.Summary()))
	return report, nil
}
