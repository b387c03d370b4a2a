package isa_test

import (
	"testing"

	"github.com/bassosimone/rv32sim/pkg/isa"
	"github.com/stretchr/testify/assert"
)

func TestABIName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "zero"},
		{1, "ra"},
		{2, "sp"},
		{10, "a0"},
		{11, "a1"},
		{31, "t6"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isa.ABIName(tt.index))
	}
}

func TestLookupRegister(t *testing.T) {
	tests := []struct {
		name string
		want uint32
		ok   bool
	}{
		{"x0", 0, true},
		{"zero", 0, true},
		{"x31", 31, true},
		{"t6", 31, true},
		{"sp", 2, true},
		{"x32", 0, false},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := isa.LookupRegister(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.name)
		}
	}
}

func TestSignExtend(t *testing.T) {
	tests := []struct {
		value uint32
		bits  int
		want  uint32
	}{
		{0x0FF, 8, 0xFFFFFFFF},
		{0x1FF, 9, 0xFFFFFFFF},
		{0x7FF, 12, 0x000007FF},
		{0xFFF, 12, 0xFFFFFFFF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isa.SignExtend(tt.value, tt.bits))
	}
}

func TestMnemonicsCoverAllFormats(t *testing.T) {
	want := []string{
		"add", "sub", "sll", "slt", "sltu", "xor", "srl", "sra", "or", "and",
		"addi", "slti", "sltiu", "xori", "ori", "andi", "slli", "srli", "srai",
		"lb", "lh", "lw", "lbu", "lhu",
		"sb", "sh", "sw",
		"beq", "bne", "blt", "bge", "bltu", "bgeu",
		"jal", "jalr",
		"lui", "auipc",
		"ecall", "ebreak",
	}
	for _, m := range want {
		_, ok := isa.Mnemonics[m]
		assert.True(t, ok, "missing mnemonic %q", m)
	}
}
