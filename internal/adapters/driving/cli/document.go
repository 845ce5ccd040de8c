package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdex-cli/internal/core/domain"
)

var (
	documentsPage     int
	documentsPageSize int
	documentsType     string
	documentsJSON     bool

	pruneMaxAgeDays int
	pruneGraceDays  int
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage indexed documents",
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one document's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

var documentsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Evict stale documents",
	Long: `Deletes documents indexed more than --max-age-days ago, unless their
chunks were written within the last --grace-days.`,
	RunE: runDocumentsPrune,
}

func init() {
	documentsListCmd.Flags().IntVar(&documentsPage, "page", 1, "page number (1-based)")
	documentsListCmd.Flags().IntVar(&documentsPageSize, "page-size", 10, "documents per page")
	documentsListCmd.Flags().StringVar(&documentsType, "type", "", "filter by file type (pdf, doc, docx)")
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")

	documentsPruneCmd.Flags().IntVar(&pruneMaxAgeDays, "max-age-days", 30, "age threshold in days")
	documentsPruneCmd.Flags().IntVar(&pruneGraceDays, "grace-days", 7, "recent chunk activity grace period in days")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsPruneCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, total, err := documentService.List(context.Background(),
		documentsPage, documentsPageSize, domain.FileType(documentsType))
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if documentsJSON {
		if docs == nil {
			docs = []domain.Document{}
		}
		payload := struct {
			Documents []domain.Document `json:"documents"`
			Total     int               `json:"total"`
			Page      int               `json:"page"`
		}{docs, total, documentsPage}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents indexed.")
		return nil
	}

	cmd.Printf("Documents (page %d, %d total):\n\n", documentsPage, total)
	for _, doc := range docs {
		cmd.Printf("  %s  %-6s %s\n", doc.ID, doc.Type, doc.Filename)
	}
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document %s not found", args[0])
		}
		return fmt.Errorf("show failed: %w", err)
	}

	cmd.Printf("ID:       %s\n", doc.ID)
	cmd.Printf("Filename: %s\n", doc.Filename)
	cmd.Printf("Path:     %s\n", doc.Filepath)
	cmd.Printf("Type:     %s\n", doc.Type)
	cmd.Printf("Size:     %d bytes\n", doc.Size)
	cmd.Printf("Hash:     %s\n", doc.Hash)
	cmd.Printf("Indexed:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Document %s deleted.\n", args[0])
	return nil
}

func runDocumentsPrune(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	deleted, err := documentService.Prune(context.Background(), pruneMaxAgeDays, pruneGraceDays)
	if err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	cmd.Printf("Pruned %d stale documents.\n", deleted)
	return nil
}
