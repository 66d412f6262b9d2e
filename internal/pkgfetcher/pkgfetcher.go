package pkgfetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/multierr"

	"github.com/open-edge-platform/node-release-info/internal/release"
	"github.com/open-edge-platform/node-release-info/internal/utils/logger"
)

// Downloader streams a URL into w.
type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer) (int64, error)
}

// Result describes one downloaded artifact.
type Result struct {
	Artifact release.Artifact
	Path     string
	Bytes    int64
}

// Options tunes FetchArtifacts. A nil Progress writer hides the bar.
type Options struct {
	Workers  int
	Progress io.Writer
}

// FetchArtifacts downloads the given artifacts into destDir using a pool of
// workers. It shows a single progress bar tracking files completed vs total.
// Results are returned in input order for the artifacts that succeeded; all
// failures are combined into the returned error.
func FetchArtifacts(ctx context.Context, dl Downloader, artifacts []release.Artifact, destDir string, opts Options) ([]Result, error) {
	log := logger.Logger()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	if len(artifacts) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(artifacts) {
		workers = len(artifacts)
	}

	total := len(artifacts)
	jobs := make(chan int, total)
	results := make([]*Result, total)
	errs := make([]error, total)
	var wg sync.WaitGroup

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				a := artifacts[idx]
				bar.Describe(fmt.Sprintf("downloading %s", a.Filename))

				res, err := fetchOne(ctx, dl, a, destDir)
				if err != nil {
					log.Errorf("downloading %s failed: %v", a.URL, err)
					errs[idx] = fmt.Errorf("%s: %w", a.Filename, err)
				} else {
					log.Debugf("downloaded %s (%d bytes)", res.Path, res.Bytes)
					logger.AddFetched(a.URL)
					results[idx] = res
				}
				_ = bar.Add(1)
			}
		}()
	}

	for i := range artifacts {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	_ = bar.Finish()

	done := make([]Result, 0, total)
	for _, r := range results {
		if r != nil {
			done = append(done, *r)
		}
	}
	return done, multierr.Combine(errs...)
}

func fetchOne(ctx context.Context, dl Downloader, a release.Artifact, destDir string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	destPath := filepath.Join(destDir, filepath.Base(a.Filename))
	tmpPath := destPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return nil, err
	}

	n, err := dl.Download(ctx, a.URL, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return nil, err
	}
	return &Result{Artifact: a, Path: destPath, Bytes: n}, nil
}
