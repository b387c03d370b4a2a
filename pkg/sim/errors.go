package sim

import "errors"

// The following errors classify a failed Step/Run, per spec.md section 7.
var (
	// ErrStepLimit indicates that the simulator's retired-instruction
	// cap (MaxInstructions) has been reached.
	ErrStepLimit = errors.New("sim: retired-instruction limit reached")

	// ErrProgramBound indicates that the program counter has moved
	// outside the loaded program's address range.
	ErrProgramBound = errors.New("sim: program counter outside loaded program")

	// ErrEndOfProgram indicates that the fetched instruction word was
	// all-zero, treated as an implicit end of program per spec.md
	// section 4.3.
	ErrEndOfProgram = errors.New("sim: end of program")
)
