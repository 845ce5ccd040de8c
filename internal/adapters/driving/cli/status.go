package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index and scan status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if ingestor == nil || documentService == nil {
		return errors.New("services not configured")
	}

	scanStatus := ingestor.Status()
	documents, chunks, err := documentService.Counts(context.Background())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if statusJSON {
		payload := struct {
			ScanInProgress bool   `json:"scan_in_progress"`
			LastScanTime   string `json:"last_scan_time,omitempty"`
			Documents      int    `json:"documents"`
			Chunks         int    `json:"chunks"`
		}{
			ScanInProgress: scanStatus.Running,
			Documents:      documents,
			Chunks:         chunks,
		}
		if !scanStatus.LastScanTime.IsZero() {
			payload.LastScanTime = scanStatus.LastScanTime.Format("2006-01-02T15:04:05Z07:00")
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if scanStatus.Running {
		cmd.Println("Scan:      in progress")
	} else if scanStatus.LastScanTime.IsZero() {
		cmd.Println("Scan:      never run")
	} else {
		cmd.Printf("Last scan: %s\n", scanStatus.LastScanTime.Format("2006-01-02 15:04:05"))
	}
	cmd.Printf("Documents: %d\n", documents)
	cmd.Printf("Chunks:    %d\n", chunks)
	return nil
}
