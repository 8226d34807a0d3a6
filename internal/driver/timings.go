package driver

import (
	"encoding/json"
	"fmt"

	"cfmtlint/internal/diag"
	"cfmtlint/internal/observ"
)

// timingNote - JSON-заметка OBS6001: путь плюс поля observ.Report.
type timingNote struct {
	Path string `json:"path,omitempty"`
	observ.Report
}

// addTimings прикладывает тайминги файла к bag. Лимит Bag на неё
// не действует: Merge расширяет max.
func addTimings(bag *diag.Bag, path string, r observ.Report) {
	if bag == nil {
		return
	}
	data, err := json.Marshal(timingNote{Path: path, Report: r})
	if err != nil {
		return
	}
	d := &diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings: %s total %.2f ms", path, r.TotalMS),
		Notes:    []diag.Note{{Msg: string(data)}},
	}
	if !bag.Add(d) {
		extra := diag.NewBag(1)
		extra.Add(d)
		bag.Merge(extra)
	}
}
