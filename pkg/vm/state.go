// Package vm contains the RV32I machine state and the decoder/executor
// that interprets instruction words against it.
//
// This package is a direct descendant of the RiSC-32 VM it was built
// from (see the original pkg/vm/vm.go's package doc comment): same
// fixed register array with a hardwired zero, same flat byte-addressed
// memory buffer, same fetch/decode/execute shape. The extended
// RiSC-32-only features — status registers, paging, the serial TTY —
// belong to privileged modes and virtual memory, both explicit
// Non-goals here, so they have no home in this package; see DESIGN.md.
package vm

import (
	"errors"
	"fmt"

	"github.com/bassosimone/rv32sim/pkg/isa"
)

// DefaultMemorySize is the default memory buffer size in bytes (1 MiB),
// per spec.md section 3.
const DefaultMemorySize = 1 << 20

// NumRegisters is the number of general purpose registers.
const NumRegisters = isa.NumRegisters

// The following errors may be returned by State's memory accessors and
// by Execute, mirroring the teacher VM's sentinel-error pattern
// (ErrHalted/ErrNotPermitted/ErrSIGSEGV in pkg/vm/vm.go).
var (
	// ErrMemoryOutOfRange indicates a memory access outside the
	// allocated byte buffer.
	ErrMemoryOutOfRange = errors.New("vm: memory access out of range")

	// ErrUnknownOpcode indicates an instruction word whose opcode
	// field does not match any known RV32I instruction format.
	ErrUnknownOpcode = errors.New("vm: unknown opcode")

	// ErrUnknownFunct indicates a recognized opcode with an
	// unrecognized funct3/funct7 combination.
	ErrUnknownFunct = errors.New("vm: unknown funct3/funct7 combination")

	// ErrUnknownSystemCall indicates a system instruction (opcode
	// 0x73) whose imm12 field is neither ECALL (0) nor EBREAK (1).
	ErrUnknownSystemCall = errors.New("vm: unknown system instruction")
)

// State is the complete architectural state of one RV32I machine: its
// general purpose registers, program counter, byte-addressable
// memory, retired-instruction counter, and run flag. State is not
// goroutine safe; per spec.md section 5, a single caller (the
// simulator facade) must serialize access.
type State struct {
	Registers        [NumRegisters]uint32
	PC               uint32
	Memory           []byte
	InstructionCount uint64
	Running          bool
}

// NewState allocates a zero-initialized machine state with a memory
// buffer of the given size in bytes.
func NewState(memorySize int) *State {
	return &State{Memory: make([]byte, memorySize)}
}

// Reg reads register i. Register 0 always reads as zero.
func (s *State) Reg(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return s.Registers[i]
}

// SetReg writes value to register i. Writes to register 0 are
// silently discarded, per spec.md section 3.
func (s *State) SetReg(i uint32, value uint32) {
	if i == 0 {
		return
	}
	s.Registers[i] = value
}

// Reset zeroes registers, PC, the instruction counter, and the run
// flag. Memory is deliberately left untouched — spec.md section 9,
// open question 3: this is intentional, to support replay workflows.
func (s *State) Reset() {
	s.Registers = [NumRegisters]uint32{}
	s.PC = 0
	s.InstructionCount = 0
	s.Running = false
}

func (s *State) checkBounds(addr uint32, size int) error {
	if uint64(addr)+uint64(size) > uint64(len(s.Memory)) {
		return fmt.Errorf("%w: address %#08x size %d", ErrMemoryOutOfRange, addr, size)
	}
	return nil
}

// ReadByte reads one byte at addr.
func (s *State) ReadByte(addr uint32) (byte, error) {
	if err := s.checkBounds(addr, 1); err != nil {
		return 0, err
	}
	return s.Memory[addr], nil
}

// ReadHalf reads a little-endian 16-bit halfword at addr.
func (s *State) ReadHalf(addr uint32) (uint16, error) {
	if err := s.checkBounds(addr, 2); err != nil {
		return 0, err
	}
	return uint16(s.Memory[addr]) | uint16(s.Memory[addr+1])<<8, nil
}

// ReadWord reads a little-endian 32-bit word at addr.
func (s *State) ReadWord(addr uint32) (uint32, error) {
	if err := s.checkBounds(addr, 4); err != nil {
		return 0, err
	}
	return uint32(s.Memory[addr]) |
		uint32(s.Memory[addr+1])<<8 |
		uint32(s.Memory[addr+2])<<16 |
		uint32(s.Memory[addr+3])<<24, nil
}

// WriteByte writes one byte at addr.
func (s *State) WriteByte(addr uint32, value byte) error {
	if err := s.checkBounds(addr, 1); err != nil {
		return err
	}
	s.Memory[addr] = value
	return nil
}

// WriteHalf writes a little-endian 16-bit halfword at addr.
func (s *State) WriteHalf(addr uint32, value uint16) error {
	if err := s.checkBounds(addr, 2); err != nil {
		return err
	}
	s.Memory[addr] = byte(value)
	s.Memory[addr+1] = byte(value >> 8)
	return nil
}

// WriteWord writes a little-endian 32-bit word at addr.
func (s *State) WriteWord(addr uint32, value uint32) error {
	if err := s.checkBounds(addr, 4); err != nil {
		return err
	}
	s.Memory[addr] = byte(value)
	s.Memory[addr+1] = byte(value >> 8)
	s.Memory[addr+2] = byte(value >> 16)
	s.Memory[addr+3] = byte(value >> 24)
	return nil
}
