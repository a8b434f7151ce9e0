package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/sandevgo/ragdesk/internal/providers/fetch"
	"github.com/sandevgo/ragdesk/internal/service/ingestion"
	"github.com/sandevgo/ragdesk/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	ingestStrategy string
	ingestSize     int
	ingestOverlap  int
)

var ingestCmd = &cobra.Command{
	Use:          "ingest <file|url>...",
	Short:        "Add documents to the knowledge base",
	Long:         `Extracts, chunks and embeds PDF, text, Markdown and HTML files, local or fetched over http(s).`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(cmd, func(ctx context.Context, a *app) error {
			out := cmd.OutOrStdout()

			var failed int
			for _, path := range args {
				doc, err := ingestFile(ctx, a, path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s  %v\n", ui.ErrorStyle.Render("✗"), path, err)
					continue
				}
				fmt.Fprintf(out, "%s %s  %s (%d chunks, %s)\n",
					ui.OKStyle.Render("✓"), path, ui.DescStyle.Render(doc.ID), doc.TotalChunks, doc.ChunkingStrategy)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		})
	},
}

// ingestFile accepts a local path or an http(s) URL.
func ingestFile(ctx context.Context, a *app, path string) (core.DocumentMetadata, error) {
	var (
		name    = filepath.Base(path)
		content []byte
		err     error
	)
	if fetch.IsURL(path) {
		name, content, err = a.Fetcher().Fetch(ctx, path)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return core.DocumentMetadata{}, err
	}
	return a.Ingestor().Ingest(ctx, ingestion.Request{
		Filename:     name,
		Content:      content,
		Strategy:     ingestStrategy,
		ChunkSize:    ingestSize,
		ChunkOverlap: ingestOverlap,
	})
}

func init() {
	ingestCmd.Flags().StringVar(&ingestStrategy, "strategy", "", "chunking strategy: fixed or semantic (default from CHUNKING_STRATEGY)")
	ingestCmd.Flags().IntVar(&ingestSize, "chunk-size", 0, "chunk size in characters, 100-2000")
	ingestCmd.Flags().IntVar(&ingestOverlap, "chunk-overlap", 0, "chunk overlap in characters, 0-500")
	rootCmd.AddCommand(ingestCmd)
}
