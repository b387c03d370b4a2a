package vm_test

import (
	"strings"
	"testing"

	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/bassosimone/rv32sim/pkg/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run assembles src, loads it at address 0, and executes instructions
// until a zero word or step limit, returning the resulting state. This
// mirrors spec.md section 8's concrete scenarios end to end.
func run(t *testing.T, src string) *vm.State {
	t.Helper()
	words, err := asm.Assemble(strings.NewReader(src))
	require.NoError(t, err)

	s := vm.NewState(4096)
	for i, w := range words {
		require.NoError(t, s.WriteWord(uint32(i*4), w.Instruction))
	}
	programEnd := uint32(len(words)) * 4
	for steps := 0; steps < 1000 && s.PC < programEnd; steps++ {
		word, err := s.ReadWord(s.PC)
		require.NoError(t, err)
		if word == 0 {
			break
		}
		if err := s.Execute(word); err != nil {
			require.NoError(t, err)
		}
	}
	return s
}

func TestScenarioArithmeticChain(t *testing.T) {
	s := run(t, `
addi x1, x0, 10
addi x2, x0, 20
add  x3, x1, x2
sub  x4, x2, x1
ecall
`)
	assert.Equal(t, uint32(10), s.Reg(1))
	assert.Equal(t, uint32(20), s.Reg(2))
	assert.Equal(t, uint32(30), s.Reg(3))
	assert.Equal(t, uint32(10), s.Reg(4))
}

func TestScenarioBitwiseOps(t *testing.T) {
	s := run(t, `
addi x1, x0, 0xF0
addi x2, x0, 0x0F
and  x3, x1, x2
or   x4, x1, x2
xor  x5, x1, x2
ecall
`)
	assert.Equal(t, uint32(0), s.Reg(3))
	assert.Equal(t, uint32(0xFF), s.Reg(4))
	assert.Equal(t, uint32(0xFF), s.Reg(5))
}

func TestScenarioShifts(t *testing.T) {
	s := run(t, `
addi x1, x0, 1
slli x2, x1, 4
srli x3, x2, 2
addi x4, x0, -8
srai x5, x4, 1
ecall
`)
	assert.Equal(t, uint32(16), s.Reg(2))
	assert.Equal(t, uint32(4), s.Reg(3))
	assert.Equal(t, uint32(0xFFFFFFFC), s.Reg(5)) // -4
}

func TestScenarioStoreLoadWord(t *testing.T) {
	s := run(t, `
addi x1, x0, 100
addi x2, x0, 42
sw   x2, 0(x1)
lw   x3, 0(x1)
ecall
`)
	assert.Equal(t, uint32(42), s.Reg(3))
}

func TestScenarioFibonacciLoop(t *testing.T) {
	s := run(t, `
addi x1, x0, 0
addi x2, x0, 1
addi x3, x0, 10
loop:
add  x4, x1, x2
add  x1, x0, x2
add  x2, x0, x4
addi x3, x3, -1
bne  x3, x0, loop
add  x11, x2, x0
ecall
`)
	assert.Equal(t, uint32(89), s.Reg(11))
}

func TestScenarioByteSignAndZeroExtend(t *testing.T) {
	s := run(t, `
addi x1, x0, 200
addi x2, x0, -1
sb   x2, 0(x1)
lb   x3, 0(x1)
lbu  x4, 0(x1)
ecall
`)
	assert.Equal(t, uint32(0xFFFFFFFF), s.Reg(3)) // sign-extended -1
	assert.Equal(t, uint32(0x000000FF), s.Reg(4)) // zero-extended 0xFF
}

func TestScenarioJalSkip(t *testing.T) {
	s := run(t, `
jal  x1, skip
addi x2, x0, 99
skip:
addi x3, x0, 50
ecall
`)
	assert.Equal(t, uint32(0), s.Reg(2))
	assert.Equal(t, uint32(50), s.Reg(3))
	assert.Equal(t, uint32(4), s.Reg(1)) // return address: pc(0) + 4
}

func TestExecuteUnknownOpcode(t *testing.T) {
	s := vm.NewState(64)
	err := s.Execute(0x7F) // opcode field all ones, unassigned
	require.Error(t, err)
	assert.ErrorIs(t, err, vm.ErrUnknownOpcode)
}

func TestExecuteMemoryOutOfRange(t *testing.T) {
	s := vm.NewState(16)
	// lw x1, 1000(x0)
	word := uint32(1000)<<20 | 0<<15 | 2<<12 | 1<<7 | 0x03
	err := s.Execute(word)
	require.Error(t, err)
	assert.ErrorIs(t, err, vm.ErrMemoryOutOfRange)
}

func TestRegisterZeroIsHardwired(t *testing.T) {
	s := vm.NewState(16)
	s.SetReg(0, 123)
	assert.Equal(t, uint32(0), s.Reg(0))
}

func TestEcallHalts(t *testing.T) {
	s := vm.NewState(16)
	require.NoError(t, s.WriteWord(0, 0x00000073)) // ecall
	s.Running = true
	require.NoError(t, s.Execute(0x00000073))
	assert.False(t, s.Running)
}
