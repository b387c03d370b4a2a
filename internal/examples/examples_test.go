package examples_test

import (
	"strings"
	"testing"

	"github.com/bassosimone/rv32sim/internal/examples"
	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesAllResolve(t *testing.T) {
	for _, name := range examples.Names {
		text, ok := examples.Get(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, text, name)
	}
}

func TestUnknownNameNotFound(t *testing.T) {
	_, ok := examples.Get("nonexistent")
	assert.False(t, ok)
}

func TestAllExamplesAssemble(t *testing.T) {
	for _, name := range examples.Names {
		text, _ := examples.Get(name)
		_, err := asm.Assemble(strings.NewReader(text))
		assert.NoError(t, err, name)
	}
}
