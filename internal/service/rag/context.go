package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/ragdesk/internal/core"
)

const blockSeparator = "\n\n"

// BuildContext joins chunks into one labelled text block of at most budget
// characters. Chunks are taken in order and whole; the first chunk that does
// not fit ends the block. It returns the text and how many chunks made it in.
func BuildContext(chunks []core.RetrievedChunk, budget int) (string, int) {
	if len(chunks) == 0 || budget <= 0 {
		return "", 0
	}

	var sb strings.Builder
	used := 0
	total := 0

	for i, c := range chunks {
		block := formatBlock(i+1, c)
		size := utf8.RuneCountInString(block)
		if used > 0 {
			size += utf8.RuneCountInString(blockSeparator)
		}
		if total+size > budget {
			break
		}

		if used > 0 {
			sb.WriteString(blockSeparator)
		}
		sb.WriteString(block)
		total += size
		used++
	}

	return sb.String(), used
}

func formatBlock(seq int, c core.RetrievedChunk) string {
	return fmt.Sprintf("[Source %d - %s]\n%s", seq, c.Filename, c.Text)
}
