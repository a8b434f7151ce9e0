package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var showChunks bool

var documentsCmd = &cobra.Command{
	Use:          "documents [id]",
	Short:        "List documents, or show one",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			svc := a.Ingestor()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				doc, err := svc.GetDocument(ctx, args[0])
				if err != nil {
					return err
				}
				printTitle(out, doc.Filename)
				printField(out, "id", doc.ID)
				printField(out, "type", doc.FileType)
				printField(out, "size", humanize.IBytes(uint64(doc.FileSize)))
				printField(out, "strategy", doc.ChunkingStrategy)
				printField(out, "chunks", strconv.Itoa(doc.TotalChunks))
				printField(out, "uploaded", doc.UploadedAt.Local().Format("2006-01-02 15:04"))

				if showChunks {
					chunks, err := svc.GetChunks(ctx, doc.ID)
					if err != nil {
						return err
					}
					for _, c := range chunks {
						fmt.Fprintf(out, "\n%s\n%s\n", ui.DescStyle.Render(fmt.Sprintf("#%d  %d chars", c.ChunkIndex, c.Size)), c.Text)
					}
				}
				return nil
			}

			docs, err := svc.ListDocuments(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Fprintln(out, "No documents yet. Add some with 'ragdesk ingest <file>'.")
				return nil
			}

			printTitle(out, fmt.Sprintf("%d documents", len(docs)))
			for _, d := range docs {
				fmt.Fprintf(out, "  %s  %-32s %4d chunks  %8s  %s\n",
					ui.DescStyle.Render(d.ID), d.Filename, d.TotalChunks,
					humanize.IBytes(uint64(d.FileSize)), humanize.Time(d.UploadedAt))
			}
			return nil
		})
	},
}

var deleteDocumentCmd = &cobra.Command{
	Use:          "delete-document <id>",
	Short:        "Remove a document and its chunks from the knowledge base",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.Ingestor().DeleteDocument(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", ui.OKStyle.Render("✓"), args[0])
			return nil
		})
	},
}

func init() {
	documentsCmd.Flags().BoolVar(&showChunks, "chunks", false, "print the chunk texts of the document")
	rootCmd.AddCommand(documentsCmd, deleteDocumentCmd)
}
