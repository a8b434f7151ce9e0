package chunking

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// fixedSeparators are tried in order, from paragraph breaks down to single
// characters.
var fixedSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Fixed splits text into chunks of at most Size characters with Overlap
// characters shared between neighbours.
type Fixed struct {
	Size    int
	Overlap int

	splitter textsplitter.RecursiveCharacter
}

func NewFixed(size, overlap int) *Fixed {
	return &Fixed{
		Size:    size,
		Overlap: overlap,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(size),
			textsplitter.WithChunkOverlap(overlap),
			textsplitter.WithSeparators(fixedSeparators),
		),
	}
}

func (f *Fixed) Name() string { return StrategyFixed }

func (f *Fixed) Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	parts, err := f.splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split text: %w", err)
	}

	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			chunks = append(chunks, p)
		}
	}
	return chunks, nil
}
