package asm

import "errors"

// The following errors may be returned while assembling a program. They
// are wrapped with fmt.Errorf to attach positional detail, so callers
// can still recognize the failure class with errors.Is.
var (
	// ErrUnknownMnemonic indicates that a line used a mnemonic this
	// assembler does not recognize.
	ErrUnknownMnemonic = errors.New("asm: unknown mnemonic")

	// ErrUnknownRegister indicates that an operand named a register
	// this assembler does not recognize.
	ErrUnknownRegister = errors.New("asm: unknown register")

	// ErrMalformedOperand indicates that an operand's syntax (e.g. a
	// memory operand's offset(basereg) shape) could not be parsed.
	ErrMalformedOperand = errors.New("asm: malformed operand")

	// ErrMalformedImmediate indicates that an immediate token was
	// neither a valid decimal, 0x-hex, nor 0b-binary literal. The
	// Resolve* functions do not return it: they look such a token up
	// as a label and report ErrUndefinedLabel when it is not one.
	ErrMalformedImmediate = errors.New("asm: malformed immediate")

	// ErrUndefinedLabel indicates that a branch, jump, or other label
	// reference named a label that was never defined.
	ErrUndefinedLabel = errors.New("asm: undefined label")

	// ErrDuplicateLabel indicates that the same label was defined
	// more than once.
	ErrDuplicateLabel = errors.New("asm: duplicate label")

	// ErrOutOfRange indicates that an immediate value does not fit in
	// its encoded bit width.
	ErrOutOfRange = errors.New("asm: immediate out of range")

	// ErrTooManyInstructions indicates that the program exceeds the
	// number of instructions representable with a 32-bit address.
	ErrTooManyInstructions = errors.New("asm: too many instructions")
)
