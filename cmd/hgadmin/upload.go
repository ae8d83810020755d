package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	models "heritageguard/internal/domain/models/docsystem"

	"github.com/spf13/cobra"
)

// extensionMIME maps the uploadable extensions to the MIME type the
// policy table expects. Browsers supply the MIME type directly; the
// CLI derives it from the file name.
var extensionMIME = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
}

func newUploadCmd() *cobra.Command {
	var (
		category    string
		description string
		language    string
		folderID    string
		isPublic    bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload a batch of documents to a site",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := openWorkspace(ctx)
			if err != nil {
				return err
			}

			var candidates []models.CandidateFile
			var handles []*os.File
			defer func() {
				for _, f := range handles {
					f.Close()
				}
			}()

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				handles = append(handles, f)

				info, err := f.Stat()
				if err != nil {
					return err
				}
				candidates = append(candidates, models.CandidateFile{
					Name:     filepath.Base(path),
					MIMEType: extensionMIME[strings.ToLower(filepath.Ext(path))],
					Size:     info.Size(),
					Content:  f,
				})
			}

			meta := models.UploadMetadata{
				Description: description,
				Category:    category,
				UploadDate:  time.Now().Format("2006-01-02"),
				IsPublic:    isPublic,
				Language:    language,
			}
			if folderID != "" {
				meta.FolderID = &folderID
			}

			result, err := ws.UploadBatch(ctx, candidates, meta, func(index, percent int) {
				fmt.Fprintf(cmd.ErrOrStderr(), "\r[%d] %3d%%", index, percent)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr())

			if report := result.Staged.RejectionReport(); report != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "rejected before upload:")
				fmt.Fprintln(cmd.OutOrStdout(), report)
			}
			if result.Outcome == nil {
				return fmt.Errorf("no files passed validation")
			}

			for _, doc := range result.Outcome.Succeeded {
				fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (id %s)\n", doc.FileName, doc.ID)
			}
			for _, failure := range result.Outcome.Failed {
				fmt.Fprintf(cmd.OutOrStdout(), "failed %s: %v\n", failure.FileName, failure.Err)
			}
			if len(result.Outcome.Failed) > 0 {
				return fmt.Errorf("%d of %d uploads failed",
					len(result.Outcome.Failed), len(candidates))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Document category (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description applied to every file")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Description language (en, rw, fr)")
	cmd.Flags().StringVarP(&folderID, "folder", "f", "", "Target folder id (default: selected/root)")
	cmd.Flags().BoolVar(&isPublic, "public", false, "Make the documents publicly visible")
	cmd.MarkFlagRequired("category")
	return cmd
}
