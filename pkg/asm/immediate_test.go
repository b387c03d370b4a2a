package asm_test

import (
	"testing"

	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImmediateLiteralForms(t *testing.T) {
	labels := map[string]int64{}
	tests := []struct {
		text string
		want uint32
	}{
		{"10", 10},
		{"-10", uint32(int32(-10))},
		{"0x1F", 0x1F},
		{"0b1010", 0b1010},
	}
	for _, tt := range tests {
		got, err := asm.ResolveImmediate(labels, tt.text, 12, 1)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestResolveImmediateLabelUsesAbsoluteAddress(t *testing.T) {
	labels := map[string]int64{"start": 100}
	got, err := asm.ResolveImmediate(labels, "start", 12, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), got)
}

func TestResolveBranchTargetComputesOffset(t *testing.T) {
	labels := map[string]int64{"loop": 8}
	got, err := asm.ResolveBranchTarget(labels, "loop", 4, 13, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), got)
}

func TestResolveUnsignedRejectsNegative(t *testing.T) {
	_, err := asm.ResolveUnsigned(map[string]int64{}, "-1", 5, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, asm.ErrOutOfRange)
}

func TestResolveWordIgnoresRangeChecks(t *testing.T) {
	got, err := asm.ResolveWord(map[string]int64{}, "0xFFFFFFFF", 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFFF), got)
}

func TestCastToUint32OutOfRange(t *testing.T) {
	_, err := asm.CastToUint32(4096, 12, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, asm.ErrOutOfRange)
}

func TestCastToUint32NegativeInRange(t *testing.T) {
	got, err := asm.CastToUint32(-1, 12, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFFFFFFFF), got)
}
