// cmd/zzconvert/main.go — Compile a manifest and zobj into a patched zobj.
//
// Usage:
//
//	go run ./cmd/zzconvert -manifest link.txt -zobj link.zobj [-out patched.zobj] [-preview map.webp]
//	go run ./cmd/zzconvert -config jobs.json
//
// The alias table is written into the zobj at the manifest's OBJECT POOL.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"zobj-alias-compiler/internal/batch"
	"zobj-alias-compiler/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config listing jobs")
	manifestPath := flag.String("manifest", "", "Manifest file (with -zobj, replaces config jobs)")
	zobjPath := flag.String("zobj", "", "zobj file to patch")
	outPath := flag.String("out", "", "Output zobj (default: <zobj>.patched.zobj)")
	previewPath := flag.String("preview", "", "Write a layout preview image")
	format := flag.String("format", "", "Preview format: webp or tga (default: webp)")
	outputDir := flag.String("outdir", "", "Directory for outputs without an explicit path")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	dict := flag.Bool("dict", false, "Print the final dictionary of each job")
	report := flag.String("report", "", "Write a JSON report of all jobs")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Manifest:  *manifestPath,
		Zobj:      *zobjPath,
		Output:    *outPath,
		Preview:   *previewPath,
		OutputDir: *outputDir,
		Format:    *format,
		Workers:   *workers,
	})
	if *report != "" {
		cfg.Report = *report
	}

	if len(cfg.Jobs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: nothing to do. Use -manifest and -zobj, or -config.")
		flag.Usage()
		os.Exit(2)
	}

	fmt.Printf("Jobs: %d, Workers: %d\n", len(cfg.Jobs), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		PreviewFormat: cfg.PreviewFormat,
		PreviewWidth:  cfg.PreviewWidth,
		PreviewScale:  cfg.PreviewScale,
		Workers:       cfg.Workers,
		Progress:      2 * time.Second,
	}, cfg.Jobs)

	elapsed := time.Since(start)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Fprintf(os.Stderr, "  FAIL %s: %s\n", r.Zobj, r.Error)
			continue
		}
		fmt.Printf("  %s -> %s  pool 0x%X: 0x%X/0x%X bytes\n", r.Zobj, r.Output, r.PoolOffset, r.TableLen, r.PoolSize)
		if *dict {
			for _, e := range r.Dictionary {
				fmt.Printf("    %-32s %s\n", e.Name, e.Value)
			}
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.2fs, compiled %d/%d\n", elapsed.Seconds(), len(results)-failed, len(results))

	if cfg.Report != "" {
		if err := batch.WriteReport(cfg.Report, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: report write failed: %v\n", err)
		} else {
			fmt.Printf("Report: %s\n", cfg.Report)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
