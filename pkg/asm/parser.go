package asm

import (
	"fmt"

	"github.com/bassosimone/rv32sim/pkg/isa"
)

// StartParsing parses lexed lines in a background goroutine and
// returns a channel of Instruction values, closed once lexing is
// exhausted or a parse error is emitted. Mirrors the parsing stage of
// the teacher assembler's lex/parse/encode pipeline.
func StartParsing(lines <-chan Line) <-chan Instruction {
	out := make(chan Instruction)
	go parseAsync(lines, out)
	return out
}

func parseAsync(lines <-chan Line, out chan<- Instruction) {
	defer close(out)
	for line := range lines {
		instr := parseLine(line)
		out <- instr
		if instr.Err() != nil {
			return
		}
	}
}

func parseLine(line Line) Instruction {
	if !line.HasInstruction {
		return emptyStatement{lineno: line.Lineno, label: line.Label}
	}
	info, found := isa.Mnemonics[line.Mnemonic]
	if !found {
		return errStatement{
			err:    fmt.Errorf("%w: %q on line %d", ErrUnknownMnemonic, line.Mnemonic, line.Lineno),
			lineno: line.Lineno,
		}
	}
	switch info.Format {
	case isa.FormatR:
		return parseR(line, info)
	case isa.FormatIArith:
		return parseIArith(line, info)
	case isa.FormatIShift:
		return parseIShift(line, info)
	case isa.FormatILoad:
		return parseILoad(line, info)
	case isa.FormatIJALR:
		return parseIJalr(line)
	case isa.FormatS:
		return parseS(line, info)
	case isa.FormatB:
		return parseB(line, info)
	case isa.FormatU:
		return parseU(line, info)
	case isa.FormatJ:
		return parseJ(line)
	case isa.FormatSystem:
		return parseSystem(line)
	default:
		return errStatement{
			err:    fmt.Errorf("%w: %q on line %d", ErrUnknownMnemonic, line.Mnemonic, line.Lineno),
			lineno: line.Lineno,
		}
	}
}

func requireOperands(line Line, n int) error {
	if len(line.Operands) != n {
		return fmt.Errorf("%w: %q expects %d operand(s), got %d on line %d",
			ErrMalformedOperand, line.Mnemonic, n, len(line.Operands), line.Lineno)
	}
	return nil
}

func resolveRegister(name string, lineno int) (uint32, error) {
	idx, ok := isa.LookupRegister(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q on line %d", ErrUnknownRegister, name, lineno)
	}
	return idx, nil
}

func parseR(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 3); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(line.Operands[1], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs2, err := resolveRegister(line.Operands[2], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return rStatement{lineno: line.Lineno, label: line.Label, info: info, rd: rd, rs1: rs1, rs2: rs2}
}

func parseIArith(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 3); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(line.Operands[1], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return iArithStatement{lineno: line.Lineno, label: line.Label, info: info, rd: rd, rs1: rs1, immTxt: line.Operands[2]}
}

func parseIShift(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 3); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(line.Operands[1], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return iShiftStatement{lineno: line.Lineno, label: line.Label, info: info, rd: rd, rs1: rs1, shamtTxt: line.Operands[2]}
}

func parseILoad(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 2); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	offset, baseName, err := parseMemOperand(line.Operands[1])
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(baseName, line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return iLoadStatement{lineno: line.Lineno, label: line.Label, info: info, rd: rd, rs1: rs1, offsetTxt: offset}
}

// parseIJalr accepts `jalr rd, rs1, imm`: three bare comma-separated
// operands, matching original_source/assembler.py's jalr case (`rd,
// rs1 = ...; imm = self.parse_immediate(parts[3])`) rather than the
// offset(basereg) memory-operand grammar spec.md reserves for loads
// and stores.
func parseIJalr(line Line) Instruction {
	if err := requireOperands(line, 3); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(line.Operands[1], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return iJalrStatement{lineno: line.Lineno, label: line.Label, rd: rd, rs1: rs1, offsetTxt: line.Operands[2]}
}

func parseS(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 2); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs2, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	offset, baseName, err := parseMemOperand(line.Operands[1])
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(baseName, line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return sStatement{lineno: line.Lineno, label: line.Label, info: info, rs1: rs1, rs2: rs2, offsetTxt: offset}
}

func parseB(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 3); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs1, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rs2, err := resolveRegister(line.Operands[1], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return bStatement{lineno: line.Lineno, label: line.Label, info: info, rs1: rs1, rs2: rs2, target: line.Operands[2]}
}

func parseU(line Line, info isa.MnemonicInfo) Instruction {
	if err := requireOperands(line, 2); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return uStatement{lineno: line.Lineno, label: line.Label, info: info, rd: rd, immTxt: line.Operands[1]}
}

func parseJ(line Line) Instruction {
	if err := requireOperands(line, 2); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	rd, err := resolveRegister(line.Operands[0], line.Lineno)
	if err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	return jStatement{lineno: line.Lineno, label: line.Label, rd: rd, target: line.Operands[1]}
}

func parseSystem(line Line) Instruction {
	if err := requireOperands(line, 0); err != nil {
		return errStatement{err: err, lineno: line.Lineno}
	}
	var imm12 uint32
	switch line.Mnemonic {
	case "ecall":
		imm12 = isa.SystemECALL
	case "ebreak":
		imm12 = isa.SystemEBREAK
	}
	return systemStatement{lineno: line.Lineno, label: line.Label, imm12: imm12}
}

// emptyStatement represents a line that carried only a label with no
// instruction text. It still records the label but contributes no
// instruction word; the two-pass encoder skips it when emitting.
type emptyStatement struct {
	lineno int
	label  *string
}

func (s emptyStatement) Err() error     { return nil }
func (s emptyStatement) Label() *string { return s.label }
func (s emptyStatement) Line() int      { return s.lineno }
func (s emptyStatement) Encode(map[string]int64, uint32) (uint32, error) {
	panic("asm: emptyStatement.Encode should never be called")
}

var _ Instruction = emptyStatement{}
