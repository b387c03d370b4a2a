package asm

import (
	"bufio"
	"io"
	"strings"
)

// Line is one lexed line of assembly source: an optional label, an
// optional mnemonic and its operands, stripped of comments and
// whitespace. Blank lines and comment-only lines produce no Line at
// all; a label with no instruction on the same line produces a Line
// with HasInstruction false.
type Line struct {
	Lineno         int
	Label          *string
	Mnemonic       string
	Operands       []string
	HasInstruction bool
}

// StartLexing lexes the assembly source read from r in a background
// goroutine and returns a channel of Line values, closed once the
// input is exhausted. This mirrors the producer side of the teacher
// assembler's StartLexing/StartParsing channel pipeline (pkg/asm/asm.go
// in the RiSC-32 source): lexing is decoupled from parsing, even though
// the two-pass encoder downstream consumes the result synchronously.
func StartLexing(r io.Reader) <-chan Line {
	out := make(chan Line)
	go lexAsync(r, out)
	return out
}

func lexAsync(r io.Reader, out chan<- Line) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line, ok := lexLine(scanner.Text(), lineno)
		if ok {
			out <- line
		}
	}
}

func lexLine(raw string, lineno int) (Line, bool) {
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Line{}, false
	}

	var label *string
	rest := raw
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		name := strings.TrimSpace(raw[:idx])
		label = &name
		rest = strings.TrimSpace(raw[idx+1:])
	}

	if rest == "" {
		return Line{Lineno: lineno, Label: label, HasInstruction: false}, true
	}

	fields := strings.Fields(rest)
	mnemonic := strings.ToLower(fields[0])
	operandText := strings.TrimSpace(rest[len(fields[0]):])
	operands := splitOperands(operandText)

	return Line{
		Lineno:         lineno,
		Label:          label,
		Mnemonic:       mnemonic,
		Operands:       operands,
		HasInstruction: true,
	}, true
}

// splitOperands splits a comma-and/or-whitespace separated operand
// list into its component tokens, per spec.md section 6.
func splitOperands(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return fields
}
