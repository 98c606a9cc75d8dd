package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReportEntry represents one job in the output report.
type ReportEntry struct {
	Manifest   string `json:"manifest"`
	Zobj       string `json:"zobj"`
	Output     string `json:"output,omitempty"`
	Preview    string `json:"preview,omitempty"`
	PoolOffset string `json:"pool_offset,omitempty"`
	PoolSize   string `json:"pool_size,omitempty"`
	TableLen   int    `json:"table_len,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

// WriteReport writes a JSON report of results to path.
func WriteReport(path string, results []Result) error {
	entries := make([]ReportEntry, len(results))
	for i, r := range results {
		e := ReportEntry{
			Manifest: r.Manifest,
			Zobj:     r.Zobj,
		}
		if r.Success {
			e.Output = r.Output
			e.Preview = r.Preview
			e.PoolOffset = fmt.Sprintf("0x%X", r.PoolOffset)
			e.PoolSize = fmt.Sprintf("0x%X", r.PoolSize)
			e.TableLen = r.TableLen
		} else {
			if r.Kind != 0 {
				e.ErrorKind = r.Kind.String()
			}
			e.Error = r.Error
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
