package asm

import (
	"fmt"
	"strings"

	"github.com/bassosimone/rv32sim/pkg/isa"
)

// Instruction is a parsed assembly statement, following the shape of
// the teacher assembler's Instruction interface (pkg/asm/instruction.go
// in the RiSC-32 source): Err/Label/Line report parse-time state, and
// Encode resolves labels against the finished symbol table to produce
// the 32-bit instruction word.
//
// Where the teacher defines one concrete type per RiSC-16 mnemonic,
// this assembler defines one type per RV32I *format* (R, I-arith,
// I-shift, I-load, I-jalr, S, B, U, J, system): RV32I has 39 mnemonics
// against RiSC-16's 11, and nearly all of the per-mnemonic variance is
// just the (opcode, funct3, funct7) triple already captured by
// isa.MnemonicInfo, so a type per mnemonic would be boilerplate with no
// behavioral difference. This keeps the teacher's "one type per shape,
// four-method interface" discipline while scaling to RV32I's mnemonic
// count.
type Instruction interface {
	// Err returns the error occurred processing the instruction, if any.
	Err() error

	// Label returns the label attached to this line, if any.
	Label() *string

	// Line returns the source line number this instruction came from.
	Line() int

	// Encode encodes the instruction into its 32-bit word. labels maps
	// every label to its byte address; pc is the byte address of this
	// instruction.
	Encode(labels map[string]int64, pc uint32) (uint32, error)
}

// errStatement wraps a parse-time error so it can flow through the
// same Instruction pipeline as successfully parsed statements.
type errStatement struct {
	err    error
	lineno int
}

func (s errStatement) Err() error    { return s.err }
func (s errStatement) Label() *string { return nil }
func (s errStatement) Line() int      { return s.lineno }
func (s errStatement) Encode(map[string]int64, uint32) (uint32, error) {
	return 0, fmt.Errorf("%w: statement carries a parse error", ErrMalformedOperand)
}

var _ Instruction = errStatement{}

type rStatement struct {
	lineno int
	label  *string
	info   isa.MnemonicInfo
	rd     uint32
	rs1    uint32
	rs2    uint32
}

func (s rStatement) Err() error     { return nil }
func (s rStatement) Label() *string { return s.label }
func (s rStatement) Line() int      { return s.lineno }

func (s rStatement) Encode(map[string]int64, uint32) (uint32, error) {
	var out uint32
	out |= (s.info.Funct7 & 0x7F) << 25
	out |= (s.rs2 & 0x1F) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= (s.rd & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type iArithStatement struct {
	lineno int
	label  *string
	info   isa.MnemonicInfo
	rd     uint32
	rs1    uint32
	immTxt string
}

func (s iArithStatement) Err() error     { return nil }
func (s iArithStatement) Label() *string { return s.label }
func (s iArithStatement) Line() int      { return s.lineno }

func (s iArithStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveImmediate(labels, s.immTxt, 12, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= (imm & 0xFFF) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= (s.rd & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type iShiftStatement struct {
	lineno int
	label  *string
	info   isa.MnemonicInfo
	rd     uint32
	rs1    uint32
	shamtTxt string
}

func (s iShiftStatement) Err() error     { return nil }
func (s iShiftStatement) Label() *string { return s.label }
func (s iShiftStatement) Line() int      { return s.lineno }

func (s iShiftStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	shamt, err := ResolveUnsigned(labels, s.shamtTxt, 5, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= (s.info.Funct7 & 0x7F) << 25
	out |= (shamt & 0x1F) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= (s.rd & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type iLoadStatement struct {
	lineno   int
	label    *string
	info     isa.MnemonicInfo
	rd       uint32
	rs1      uint32
	offsetTxt string
}

func (s iLoadStatement) Err() error     { return nil }
func (s iLoadStatement) Label() *string { return s.label }
func (s iLoadStatement) Line() int      { return s.lineno }

func (s iLoadStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveImmediate(labels, s.offsetTxt, 12, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= (imm & 0xFFF) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= (s.rd & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type iJalrStatement struct {
	lineno    int
	label     *string
	rd        uint32
	rs1       uint32
	offsetTxt string
}

func (s iJalrStatement) Err() error     { return nil }
func (s iJalrStatement) Label() *string { return s.label }
func (s iJalrStatement) Line() int      { return s.lineno }

func (s iJalrStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveImmediate(labels, s.offsetTxt, 12, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= (imm & 0xFFF) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.rd & 0x1F) << 7
	out |= isa.OpcodeJALR & 0x7F
	return out, nil
}

type sStatement struct {
	lineno    int
	label     *string
	info      isa.MnemonicInfo
	rs1       uint32
	rs2       uint32
	offsetTxt string
}

func (s sStatement) Err() error     { return nil }
func (s sStatement) Label() *string { return s.label }
func (s sStatement) Line() int      { return s.lineno }

func (s sStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveImmediate(labels, s.offsetTxt, 12, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= ((imm >> 5) & 0x7F) << 25
	out |= (s.rs2 & 0x1F) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= (imm & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type bStatement struct {
	lineno int
	label  *string
	info   isa.MnemonicInfo
	rs1    uint32
	rs2    uint32
	target string
}

func (s bStatement) Err() error     { return nil }
func (s bStatement) Label() *string { return s.label }
func (s bStatement) Line() int      { return s.lineno }

func (s bStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveBranchTarget(labels, s.target, pc, 13, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= ((imm >> 12) & 0x1) << 31
	out |= ((imm >> 5) & 0x3F) << 25
	out |= (s.rs2 & 0x1F) << 20
	out |= (s.rs1 & 0x1F) << 15
	out |= (s.info.Funct3 & 0x7) << 12
	out |= ((imm >> 1) & 0xF) << 8
	out |= ((imm >> 11) & 0x1) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type uStatement struct {
	lineno int
	label  *string
	info   isa.MnemonicInfo
	rd     uint32
	immTxt string
}

func (s uStatement) Err() error     { return nil }
func (s uStatement) Label() *string { return s.label }
func (s uStatement) Line() int      { return s.lineno }

func (s uStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveWord(labels, s.immTxt, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= imm & 0xFFFFF000
	out |= (s.rd & 0x1F) << 7
	out |= s.info.Opcode & 0x7F
	return out, nil
}

type jStatement struct {
	lineno int
	label  *string
	rd     uint32
	target string
}

func (s jStatement) Err() error     { return nil }
func (s jStatement) Label() *string { return s.label }
func (s jStatement) Line() int      { return s.lineno }

func (s jStatement) Encode(labels map[string]int64, pc uint32) (uint32, error) {
	imm, err := ResolveBranchTarget(labels, s.target, pc, 21, s.lineno)
	if err != nil {
		return 0, err
	}
	var out uint32
	out |= ((imm >> 20) & 0x1) << 31
	out |= ((imm >> 1) & 0x3FF) << 21
	out |= ((imm >> 11) & 0x1) << 20
	out |= ((imm >> 12) & 0xFF) << 12
	out |= (s.rd & 0x1F) << 7
	out |= isa.OpcodeJAL & 0x7F
	return out, nil
}

type systemStatement struct {
	lineno int
	label  *string
	imm12  uint32
}

func (s systemStatement) Err() error     { return nil }
func (s systemStatement) Label() *string { return s.label }
func (s systemStatement) Line() int      { return s.lineno }

func (s systemStatement) Encode(map[string]int64, uint32) (uint32, error) {
	var out uint32
	out |= (s.imm12 & 0xFFF) << 20
	out |= isa.OpcodeSystem & 0x7F
	return out, nil
}

// parseMemOperand splits an "offset(basereg)" token into its offset
// text and base register name, per spec.md section 4.1.
func parseMemOperand(token string) (offset, base string, err error) {
	open := strings.IndexByte(token, '(')
	close := strings.IndexByte(token, ')')
	if open < 0 || close < 0 || close < open {
		return "", "", fmt.Errorf("%w: %q is not a valid offset(basereg) operand", ErrMalformedOperand, token)
	}
	offset = token[:open]
	if offset == "" {
		offset = "0"
	}
	base = strings.TrimSpace(token[open+1 : close])
	return offset, base, nil
}
