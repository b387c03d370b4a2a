// Package asm implements the two-pass RV32I assembler: text assembly
// source in, label-resolved 32-bit instruction words out.
//
// See pkg/isa for the shared opcode/mnemonic tables and pkg/vm for the
// decoder/executor that consumes the words this package produces.
package asm

import (
	"fmt"
	"io"
	"math"
)

// Word pairs an assembled instruction word with the source line it
// came from, mirroring the teacher assembler's InstructionOrError
// (pkg/asm/asm.go in the RiSC-32 source).
type Word struct {
	Instruction uint32
	Lineno      int
}

// Assemble runs the two-pass assembler over r: pass 1 walks the lexed
// and parsed statements to build the label table, pass 2 asks each
// statement to encode itself against that table. Assembly is
// all-or-nothing: on the first error, no partial word list is
// returned, per spec.md section 4.1.
func Assemble(r io.Reader) ([]Word, error) {
	var statements []Instruction
	labels := make(map[string]int64)
	var pc int64

	for instr := range StartParsing(StartLexing(r)) {
		if err := instr.Err(); err != nil {
			return nil, err
		}
		if label := instr.Label(); label != nil {
			if _, dup := labels[*label]; dup {
				return nil, fmt.Errorf("%w: %q on line %d", ErrDuplicateLabel, *label, instr.Line())
			}
			labels[*label] = pc
		}
		if _, empty := instr.(emptyStatement); empty {
			continue
		}
		statements = append(statements, instr)
		pc += 4
	}

	if int64(len(statements)) > math.MaxUint32/4 {
		return nil, ErrTooManyInstructions
	}

	words := make([]Word, 0, len(statements))
	pc = 0
	for _, instr := range statements {
		word, err := instr.Encode(labels, uint32(pc))
		if err != nil {
			return nil, err
		}
		words = append(words, Word{Instruction: word, Lineno: instr.Line()})
		pc += 4
	}
	return words, nil
}
