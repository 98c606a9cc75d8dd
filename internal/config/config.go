package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job is one manifest/zobj pair to compile.
type Job struct {
	Manifest string `json:"manifest" yaml:"manifest"`
	Zobj     string `json:"zobj" yaml:"zobj"`
	Output   string `json:"output,omitempty" yaml:"output,omitempty"`
	Preview  string `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// Config holds job paths and run settings.
type Config struct {
	BaseDir   string `json:"base_dir" yaml:"base_dir"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	Jobs      []Job  `json:"jobs" yaml:"jobs"`

	// Preview settings
	PreviewFormat string `json:"preview_format" yaml:"preview_format"`
	PreviewWidth  int    `json:"preview_width" yaml:"preview_width"`
	PreviewScale  int    `json:"preview_scale" yaml:"preview_scale"`

	Workers int    `json:"workers" yaml:"workers"`
	Report  string `json:"report" yaml:"report"`
}

// Load reads a JSON or YAML config file, chosen by extension.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Manifest  string
	Zobj      string
	Output    string
	Preview   string
	OutputDir string
	Format    string
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// A manifest/zobj pair on the command line replaces the job list
	if flags.Manifest != "" && flags.Zobj != "" {
		c.Jobs = []Job{{
			Manifest: flags.Manifest,
			Zobj:     flags.Zobj,
			Output:   flags.Output,
			Preview:  flags.Preview,
		}}
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.PreviewFormat = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	for i := range c.Jobs {
		j := &c.Jobs[i]
		j.Manifest = c.abs(j.Manifest)
		j.Zobj = c.abs(j.Zobj)
		if j.Output == "" {
			j.Output = defaultOutput(j.Zobj, c.OutputDir)
		} else {
			j.Output = c.abs(j.Output)
		}
		if j.Preview != "" {
			j.Preview = c.abs(j.Preview)
		}
	}
	if c.Report != "" {
		c.Report = c.abs(c.Report)
	}

	// Defaults for run settings
	c.PreviewFormat = strings.ToLower(c.PreviewFormat)
	if c.PreviewFormat == "" {
		c.PreviewFormat = "webp"
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = 64
	}
	if c.PreviewScale <= 0 {
		c.PreviewScale = 4
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// abs resolves a relative path against BaseDir.
func (c *Config) abs(p string) string {
	if p == "" || c.BaseDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// defaultOutput names the patched zobj after its input: link.zobj becomes
// link.patched.zobj, placed in outDir when one is set.
func defaultOutput(zobj, outDir string) string {
	ext := filepath.Ext(zobj)
	name := strings.TrimSuffix(filepath.Base(zobj), ext) + ".patched" + ext
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(zobj), name)
}
