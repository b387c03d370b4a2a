// Package sim implements the simulator facade described by spec.md
// section 4.3: it orchestrates assembly loading, single-stepping,
// running to a halt, and resetting, and it records a bounded
// execution log on top of the pkg/vm machine state and pkg/asm
// assembler. This is the orchestration layer the teacher repo splits
// across its cmd/vm and cmd/interp main functions (load -> fetch ->
// execute -> trace loop); here it is pulled out into a reusable type
// so a host front-end (out of scope for this module) has a single
// surface to call.
package sim

import (
	"fmt"
	"strings"

	"github.com/bassosimone/rv32sim/internal/examples"
	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/bassosimone/rv32sim/pkg/isa"
	"github.com/bassosimone/rv32sim/pkg/vm"
)

// Defaults, per spec.md section 4.3 and section 5.
const (
	DefaultMemorySize     = vm.DefaultMemorySize
	DefaultMaxInstructions = 10_000
	DefaultMaxSteps       = 1_000
	LogDepth              = 10
)

// RegisterChange records one register mutated by a single retired
// instruction.
type RegisterChange struct {
	Index uint32
	Old   uint32
	New   uint32
}

// LogEntry is one execution-log record, per spec.md section 3.
type LogEntry struct {
	PCBefore         uint32
	Instruction      uint32
	ChangedRegisters []RegisterChange
}

// StateView is a snapshot of the simulator's externally observable
// state, per spec.md section 4.3's state() query.
type StateView struct {
	PC               uint32
	Registers        [isa.NumRegisters]uint32
	InstructionCount uint64
	Running          bool
	RecentLog        []LogEntry
}

// MemoryWord is one {address, word32} pair from a memory dump.
type MemoryWord struct {
	Address uint32
	Word    uint32
}

// Simulator is the facade described by spec.md section 4.3.
// Simulator is not goroutine safe; per spec.md section 5, every
// externally observable operation takes exclusive access to the
// underlying machine state, and serializing calls is the caller's
// responsibility.
type Simulator struct {
	state           *vm.State
	programWords    int
	maxInstructions uint64
	maxSteps        int
	log             []LogEntry
}

// New constructs a Simulator with the given memory size (bytes) and
// retired-instruction cap. Pass 0 for either to take the spec.md
// defaults.
func New(memorySize int, maxInstructions uint64) *Simulator {
	if memorySize <= 0 {
		memorySize = DefaultMemorySize
	}
	if maxInstructions == 0 {
		maxInstructions = DefaultMaxInstructions
	}
	return &Simulator{
		state:           vm.NewState(memorySize),
		maxInstructions: maxInstructions,
		maxSteps:        DefaultMaxSteps,
	}
}

// LoadAssembly assembles text and loads the resulting instruction
// words into memory starting at address 0, per spec.md section 4.3.
func (s *Simulator) LoadAssembly(text string) (bool, string) {
	words, err := asm.Assemble(strings.NewReader(text))
	if err != nil {
		return false, err.Error()
	}
	plain := make([]uint32, len(words))
	for i, w := range words {
		plain[i] = w.Instruction
	}
	return s.LoadWords(plain)
}

// LoadWords loads pre-assembled instruction words directly, skipping
// the assembler, per spec.md section 4.3.
func (s *Simulator) LoadWords(words []uint32) (bool, string) {
	s.state.Reset()
	for i, word := range words {
		addr := uint32(i) * 4
		if err := s.state.WriteWord(addr, word); err != nil {
			return false, err.Error()
		}
	}
	s.state.PC = 0
	s.programWords = len(words)
	s.log = nil
	return true, fmt.Sprintf("loaded %d instruction word(s)", len(words))
}

// Step fetches, decodes, and executes one instruction, per spec.md
// section 4.3.
func (s *Simulator) Step() (bool, string) {
	if s.state.InstructionCount >= s.maxInstructions {
		return false, fmt.Sprintf("%s: %d instructions retired", ErrStepLimit, s.state.InstructionCount)
	}
	programEnd := uint32(s.programWords) * 4
	if s.state.PC >= programEnd {
		return false, fmt.Sprintf("%s: pc %#08x", ErrProgramBound, s.state.PC)
	}
	word, err := s.state.ReadWord(s.state.PC)
	if err != nil {
		return false, err.Error()
	}
	if word == 0 {
		return false, ErrEndOfProgram.Error()
	}

	pcBefore := s.state.PC
	before := s.state.Registers
	execErr := s.state.Execute(word)
	s.appendLog(pcBefore, word, before)
	if execErr != nil {
		return false, execErr.Error()
	}
	return true, "ok"
}

func (s *Simulator) appendLog(pcBefore, word uint32, before [isa.NumRegisters]uint32) {
	var changed []RegisterChange
	for i := range before {
		if before[i] != s.state.Registers[i] {
			changed = append(changed, RegisterChange{Index: uint32(i), Old: before[i], New: s.state.Registers[i]})
		}
	}
	entry := LogEntry{PCBefore: pcBefore, Instruction: word, ChangedRegisters: changed}
	s.log = append(s.log, entry)
	if len(s.log) > LogDepth {
		s.log = s.log[len(s.log)-LogDepth:]
	}
}

// Run sets Running and steps repeatedly until it clears, a step
// fails, or maxSteps elapses, per spec.md section 4.3. Pass 0 for
// maxSteps to take the spec.md default of 1,000.
func (s *Simulator) Run(maxSteps int) (bool, string) {
	if maxSteps <= 0 {
		maxSteps = s.maxSteps
	}
	s.state.Running = true
	for i := 0; i < maxSteps && s.state.Running; i++ {
		ok, msg := s.Step()
		if !ok {
			s.state.Running = false
			return false, msg
		}
	}
	if s.state.Running {
		s.state.Running = false
		return true, fmt.Sprintf("run: step limit of %d reached before halt", maxSteps)
	}
	return true, "run: halted"
}

// Reset zeroes registers, PC, the instruction counter, and the log,
// and clears Running. Memory is left untouched, per spec.md section
// 9, open question 3.
func (s *Simulator) Reset() {
	s.state.Reset()
	s.log = nil
}

// State returns a snapshot of the simulator's externally observable
// state, per spec.md section 4.3.
func (s *Simulator) State() StateView {
	return StateView{
		PC:               s.state.PC,
		Registers:        s.state.Registers,
		InstructionCount: s.state.InstructionCount,
		Running:          s.state.Running,
		RecentLog:        append([]LogEntry(nil), s.log...),
	}
}

// MemoryDump returns the {address, word32} pairs covering [start,
// start+size), aligned to 4 bytes, per spec.md section 4.3.
func (s *Simulator) MemoryDump(start, size uint32) ([]MemoryWord, error) {
	start -= start % 4
	count := size / 4
	words := make([]MemoryWord, 0, count)
	for i := uint32(0); i < count; i++ {
		addr := start + i*4
		word, err := s.state.ReadWord(addr)
		if err != nil {
			return nil, err
		}
		words = append(words, MemoryWord{Address: addr, Word: word})
	}
	return words, nil
}

// RegisterABINames returns the canonical display string for every
// register x0..x31, per spec.md section 6.
func (s *Simulator) RegisterABINames() [isa.NumRegisters]string {
	var names [isa.NumRegisters]string
	for i := range names {
		names[i] = isa.ABIName(i)
	}
	return names
}

// ExampleProgram returns the assembly text of the named example
// program (one of "simple_add", "factorial", "array_sum",
// "fibonacci"), per spec.md section 6. Callers can feed the result
// straight into LoadAssembly.
func ExampleProgram(name string) (string, bool) {
	return examples.Get(name)
}

// ExampleProgramNames lists the example programs ExampleProgram
// serves.
func ExampleProgramNames() []string {
	return append([]string(nil), examples.Names...)
}
