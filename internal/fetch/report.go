package fetch

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

type failedEntry struct {
	Symbol    string `json:"symbol"`
	DateRange string `json:"date_range"`
	Reason    string `json:"reason"`
}

// writeRunReport persists which symbols fetched and which failed (with
// reasons) so a partially failed run stays inspectable after the fact.
func writeRunReport(dir string, results []Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var successList []string
	var failedList []failedEntry
	for _, r := range results {
		if r.Err == nil {
			successList = append(successList, r.Symbol)
		} else {
			failedList = append(failedList, failedEntry{Symbol: r.Symbol, DateRange: r.Window, Reason: r.Err.Error()})
		}
	}

	if len(successList) > 0 {
		p := filepath.Join(dir, ".lastrun.success.json")
		data, err := json.MarshalIndent(successList, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "symbols", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(dir, ".lastrun.failed.json")
		data, err := json.MarshalIndent(failedList, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}
