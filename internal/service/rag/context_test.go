package rag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sandevgo/ragdesk/internal/core"
	"github.com/stretchr/testify/assert"
)

// chunkWithBlockSize returns a chunk whose formatted block at position seq is
// exactly size characters long.
func chunkWithBlockSize(t *testing.T, seq, size int) core.RetrievedChunk {
	t.Helper()
	c := core.RetrievedChunk{Chunk: core.Chunk{Filename: "f.txt"}}
	overhead := utf8.RuneCountInString(formatBlock(seq, c))
	if size < overhead {
		t.Fatalf("block size %d smaller than label overhead %d", size, overhead)
	}
	c.Text = strings.Repeat("x", size-overhead)
	return c
}

func TestBuildContext_Empty(t *testing.T) {
	text, used := BuildContext(nil, 100)
	assert.Equal(t, "", text)
	assert.Zero(t, used)
}

func TestBuildContext_GreedyStop(t *testing.T) {
	sep := utf8.RuneCountInString(blockSeparator)
	chunks := []core.RetrievedChunk{
		chunkWithBlockSize(t, 1, 40),
		chunkWithBlockSize(t, 2, 50-sep),
		chunkWithBlockSize(t, 3, 30-sep),
	}

	text, used := BuildContext(chunks, 100)

	assert.Equal(t, 2, used)
	assert.Equal(t, 90, utf8.RuneCountInString(text))
	assert.Contains(t, text, "[Source 1 - f.txt]")
	assert.Contains(t, text, "[Source 2 - f.txt]")
	assert.NotContains(t, text, "[Source 3")
}

func TestBuildContext_StopsAtFirstMisfit(t *testing.T) {
	// A later small chunk that would fit is still excluded once a chunk misses.
	chunks := []core.RetrievedChunk{
		chunkWithBlockSize(t, 1, 40),
		chunkWithBlockSize(t, 2, 80),
		chunkWithBlockSize(t, 3, 25),
	}

	text, used := BuildContext(chunks, 100)

	assert.Equal(t, 1, used)
	assert.Equal(t, 40, utf8.RuneCountInString(text))
}

func TestBuildContext_FirstChunkTooLarge(t *testing.T) {
	chunks := []core.RetrievedChunk{
		chunkWithBlockSize(t, 1, 150),
		chunkWithBlockSize(t, 2, 30),
	}

	text, used := BuildContext(chunks, 100)

	assert.Equal(t, "", text)
	assert.Zero(t, used)
}

func TestBuildContext_ExactBudget(t *testing.T) {
	chunks := []core.RetrievedChunk{chunkWithBlockSize(t, 1, 100)}

	text, used := BuildContext(chunks, 100)

	assert.Equal(t, 1, used)
	assert.Equal(t, 100, utf8.RuneCountInString(text))
}

func TestBuildContext_NeverExceedsBudget(t *testing.T) {
	sizes := []int{30, 45, 60, 25, 90, 33, 41}
	for budget := 0; budget <= 400; budget += 7 {
		chunks := make([]core.RetrievedChunk, len(sizes))
		for i, s := range sizes {
			chunks[i] = chunkWithBlockSize(t, i+1, s)
		}

		text, used := BuildContext(chunks, budget)
		got := utf8.RuneCountInString(text)

		assert.LessOrEqual(t, got, budget, "budget %d", budget)
		if budget < sizes[0] {
			assert.Zero(t, used, "budget %d", budget)
		}
	}
}

func TestBuildContext_Format(t *testing.T) {
	chunks := []core.RetrievedChunk{
		{Chunk: core.Chunk{Filename: "faq.txt", Text: "Office opens at 9."}},
		{Chunk: core.Chunk{Filename: "guide.pdf", Text: "Bring your ID."}},
	}

	text, used := BuildContext(chunks, 3000)

	assert.Equal(t, 2, used)
	assert.Equal(t,
		"[Source 1 - faq.txt]\nOffice opens at 9.\n\n[Source 2 - guide.pdf]\nBring your ID.",
		text,
	)
}

func TestBuildContext_CountsCharactersNotBytes(t *testing.T) {
	c := core.RetrievedChunk{Chunk: core.Chunk{Filename: "ü.txt", Text: "héllo wörld"}}
	size := utf8.RuneCountInString(formatBlock(1, c))

	text, used := BuildContext([]core.RetrievedChunk{c}, size)

	assert.Equal(t, 1, used)
	assert.Greater(t, len(text), size)
}
