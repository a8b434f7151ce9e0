package chunking

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pkoukk/tiktoken-go"
)

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

// Semantic packs whole sentences into chunks of at most MaxTokens
// cl100k_base tokens, carrying trailing sentences over as overlap.
type Semantic struct {
	MaxTokens     int
	OverlapTokens int
}

// NewSemantic converts character budgets to tokens at roughly four
// characters per token.
func NewSemantic(chunkSize, chunkOverlap int) *Semantic {
	maxTokens := chunkSize / 4
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &Semantic{MaxTokens: maxTokens, OverlapTokens: chunkOverlap / 4}
}

func (s *Semantic) Name() string { return StrategySemantic }

func (s *Semantic) Split(text string) ([]string, error) {
	if _, err := getTokenizer(); err != nil {
		return nil, err
	}
	return chunkSentences(text, s.MaxTokens, s.OverlapTokens), nil
}

func chunkSentences(text string, maxTokens, overlapTokens int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	sentences := splitSentences(text)

	var chunks []string
	var current strings.Builder
	currentTokens := 0

	flush := func() {
		if t := strings.TrimSpace(current.String()); t != "" {
			chunks = append(chunks, t)
		}
		current.Reset()
		currentTokens = 0
	}

	for i, sentence := range sentences {
		sentenceTokens := countTokens(sentence)

		// A sentence above the limit is sliced on token boundaries.
		if sentenceTokens > maxTokens {
			flush()
			for _, piece := range sliceTokens(sentence, maxTokens) {
				if p := strings.TrimSpace(piece); p != "" {
					chunks = append(chunks, p)
				}
			}
			continue
		}

		if currentTokens+sentenceTokens > maxTokens && current.Len() > 0 {
			flush()
			overlap := overlapFrom(sentences, i, overlapTokens)
			current.WriteString(overlap)
			currentTokens = countTokens(overlap)
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
		currentTokens += sentenceTokens
	}
	flush()

	return chunks
}

func sliceTokens(text string, maxTokens int) []string {
	enc, _ := getTokenizer()
	tokens := enc.Encode(text, nil, nil)

	var pieces []string
	for i := 0; i < len(tokens); i += maxTokens {
		end := min(i+maxTokens, len(tokens))
		pieces = append(pieces, enc.Decode(tokens[i:end]))
	}
	return pieces
}

var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true, '．': true, '…': true,
}

// splitSentences splits paragraphs on terminal punctuation followed by a
// space, the end of the paragraph, or a CJK character.
func splitSentences(text string) []string {
	var sentences []string

	for _, para := range splitParagraphs(text) {
		var current strings.Builder
		runes := []rune(para)

		for i, r := range runes {
			current.WriteRune(r)
			if !sentenceEnders[r] {
				continue
			}
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) || isCJK(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
	}

	if len(sentences) == 0 && text != "" {
		return []string{text}
	}
	return sentences
}

// splitParagraphs unwraps soft line breaks inside each paragraph.
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var result []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	return tk, tkErr
}

func countTokens(text string) int {
	if text == "" {
		return 0
	}
	enc, _ := getTokenizer()
	return len(enc.Encode(text, nil, nil))
}

func overlapFrom(sentences []string, currentIdx int, targetTokens int) string {
	if currentIdx == 0 || targetTokens <= 0 {
		return ""
	}

	var overlap []string
	tokens := 0
	for i := currentIdx - 1; i >= 0 && tokens < targetTokens; i-- {
		overlap = append([]string{sentences[i]}, overlap...)
		tokens += countTokens(sentences[i])
	}
	return strings.Join(overlap, " ")
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}
