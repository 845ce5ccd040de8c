package domain

import "time"

// ScanStats aggregates the outcome of one scan over the watched folder.
type ScanStats struct {
	// Processed counts files that were extracted, chunked, embedded
	// and written to the store.
	Processed int `json:"processed"`

	// Skipped counts files whose content hash already exists.
	Skipped int `json:"skipped"`

	// Errors counts files that failed extraction, chunking or upsert.
	// Errors never abort the scan.
	Errors int `json:"errors"`
}

// ScanStatus describes the ingestion pipeline's current state.
type ScanStatus struct {
	// Running reports whether a scan is in progress.
	Running bool `json:"running"`

	// ScanID identifies the current or most recent scan run.
	ScanID string `json:"scan_id,omitempty"`

	// LastScanTime is when the last scan finished. Zero if no scan
	// has completed yet.
	LastScanTime time.Time `json:"last_scan_time,omitzero"`

	// Stats holds running counts for the active scan, or the final
	// counts of the last completed one.
	Stats ScanStats `json:"stats"`
}
