package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Timeout time.Duration `env:"TIMEOUT"`
}

type sample struct {
	Name      string   `env:"NAME,required"`
	TopK      int      `env:"TOP_K"`
	Threshold float32  `env:"THRESHOLD"`
	Enabled   bool     `env:"ENABLED"`
	Empty     string   `env:"EMPTY"`
	Tags      []string `env:"TAGS"`
	NoTag     string
	hidden    string `env:"HIDDEN"`
	Nested    inner
}

func TestMarshalEnv(t *testing.T) {
	s := &sample{
		Name:      "ragdesk",
		TopK:      5,
		Threshold: 0.7,
		Enabled:   true,
		Tags:      []string{"a", "b"},
		NoTag:     "ignored",
		hidden:    "ignored",
		Nested:    inner{Timeout: 90 * time.Second},
	}

	out, err := MarshalEnv(s)
	require.NoError(t, err)

	assert.Equal(t, "NAME=ragdesk\nTOP_K=5\nTHRESHOLD=0.7\nENABLED=true\nTAGS=a,b\nTIMEOUT=1m30s\n", out)
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}
