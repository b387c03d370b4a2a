package asm_test

import (
	"strings"
	"testing"

	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainLines(t *testing.T, src string) []asm.Line {
	t.Helper()
	var lines []asm.Line
	for line := range asm.StartLexing(strings.NewReader(src)) {
		lines = append(lines, line)
	}
	return lines
}

func TestLexStripsCommentsAndBlankLines(t *testing.T) {
	lines := drainLines(t, "\n# just a comment\naddi x1, x0, 1 # trailing\n\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "addi", lines[0].Mnemonic)
	assert.Equal(t, []string{"x1", "x0", "1"}, lines[0].Operands)
}

func TestLexLabelWithInstructionOnSameLine(t *testing.T) {
	lines := drainLines(t, "loop: addi x1, x1, -1")
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Label)
	assert.Equal(t, "loop", *lines[0].Label)
	assert.True(t, lines[0].HasInstruction)
}

func TestLexLabelOnOwnLine(t *testing.T) {
	lines := drainLines(t, "loop:\naddi x1, x1, -1")
	require.Len(t, lines, 2)
	require.NotNil(t, lines[0].Label)
	assert.False(t, lines[0].HasInstruction)
	assert.True(t, lines[1].HasInstruction)
}
