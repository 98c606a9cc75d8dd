package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"zobj-alias-compiler/internal/config"
	"zobj-alias-compiler/internal/errs"
	"zobj-alias-compiler/internal/playas"
	"zobj-alias-compiler/internal/preview"
	"zobj-alias-compiler/internal/source"
	"zobj-alias-compiler/internal/symtab"
)

// Config holds all shared settings for a batch run.
type Config struct {
	PreviewFormat string
	PreviewWidth  int
	PreviewScale  int
	Workers       int
	Progress      time.Duration // 0 disables progress lines
}

// Result holds the outcome of compiling one job.
type Result struct {
	Manifest   string
	Zobj       string
	Output     string
	Preview    string
	PoolOffset uint32
	PoolSize   uint32
	TableLen   int
	Dictionary []symtab.Entry
	Success    bool
	Kind       errs.Kind
	Error      string
}

// Run compiles all jobs using a worker pool. Jobs are independent; each
// one runs the single-threaded pipeline on its own inputs.
func Run(cfg Config, jobs []config.Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f jobs/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job config.Job) Result {
	res := Result{Manifest: job.Manifest, Zobj: job.Zobj, Output: job.Output, Preview: job.Preview}
	fail := func(err error) Result {
		res.Kind = errs.KindOf(err)
		res.Error = err.Error()
		return res
	}

	man, err := source.ReadManifest(job.Manifest)
	if err != nil {
		return fail(err)
	}
	z, err := source.ReadZobj(job.Zobj)
	if err != nil {
		return fail(err)
	}

	r, err := playas.Build(man.Data, z.Data, man.Name, z.Name)
	if err != nil {
		return fail(err)
	}
	res.PoolOffset = r.PoolOffset()
	res.PoolSize = r.PoolSize()
	res.TableLen = len(r.AliasTable())
	res.Dictionary = r.Dictionary()

	out := r.Zobj()
	if err := source.WriteZobj(job.Output, out); err != nil {
		return fail(err)
	}

	if job.Preview != "" {
		img := preview.Render(preview.Layout{
			Zobj:       out,
			PoolOffset: r.PoolOffset(),
			PoolSize:   r.PoolSize(),
			Spans:      r.Spans(),
		}, cfg.PreviewWidth, cfg.PreviewScale)

		var buf bytes.Buffer
		if err := preview.Encode(&buf, img, cfg.PreviewFormat); err != nil {
			return fail(err)
		}
		if err := os.MkdirAll(filepath.Dir(job.Preview), 0755); err != nil {
			return fail(err)
		}
		if err := os.WriteFile(job.Preview, buf.Bytes(), 0644); err != nil {
			return fail(err)
		}
	}

	res.Success = true
	return res
}
