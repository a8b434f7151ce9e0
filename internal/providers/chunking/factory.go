// Package chunking provides the document splitting strategies used at
// ingestion time.
package chunking

import (
	"fmt"

	"github.com/sandevgo/ragdesk/internal/core"
)

const (
	StrategyFixed    = "fixed"
	StrategySemantic = "semantic"
)

// New returns the chunker for strategy. Sizes are in characters.
func New(strategy string, size, overlap int) (core.Chunker, error) {
	switch strategy {
	case StrategyFixed:
		return NewFixed(size, overlap), nil
	case StrategySemantic:
		return NewSemantic(size, overlap), nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownStrategy, strategy)
	}
}
