// Package examples is the small example-program library spec.md
// section 6 names as a host-facing inspection query ("example
// programs ... by name, one of fibonacci, factorial, array_sum,
// simple_add"). It is explicitly called out in spec.md section 1 as
// an external-collaborator concern, not core, so it is kept out of
// pkg/sim's critical path and implemented as a standalone lookup
// table the facade can delegate to.
package examples

// Names lists the example programs this library serves, in the order
// spec.md section 6 lists them.
var Names = []string{"fibonacci", "factorial", "array_sum", "simple_add"}

var programs = map[string]string{
	// simple_add mirrors spec.md section 8, scenario 1 exactly:
	// x1=10, x2=20, x3=30, x4=10.
	"simple_add": `
# simple_add: add and subtract two immediates.
addi x1, x0, 10
addi x2, x0, 20
add  x3, x1, x2
sub  x4, x2, x1
ecall
`,

	// factorial computes 5! with repeated-addition multiplication,
	// since the M extension (and therefore a MUL instruction) is an
	// explicit Non-goal per spec.md section 1. Result (120) lands in
	// x11.
	"factorial": `
# factorial: 5! computed via repeated-addition multiply (no MUL in RV32I).
addi x1, x0, 5       # n
addi x2, x0, 1       # result
outer:
beq  x1, x0, done
addi x3, x0, 0       # acc
add  x4, x0, x1      # counter = n
mulloop:
beq  x4, x0, mulend
add  x3, x3, x2      # acc += result
addi x4, x4, -1
jal  x0, mulloop
mulend:
add  x2, x3, x0      # result = acc
addi x1, x1, -1
jal  x0, outer
done:
add  x11, x2, x0
ecall
`,

	// array_sum stores five words into memory with sw, then sums them
	// back out with lw in a loop, per spec.md section 8, scenario 4's
	// pattern. Result (150) lands in x11.
	"array_sum": `
# array_sum: sum five memory words into x11.
addi x5, x0, 200     # base address
addi x6, x0, 10
sw   x6, 0(x5)
addi x6, x0, 20
sw   x6, 4(x5)
addi x6, x0, 30
sw   x6, 8(x5)
addi x6, x0, 40
sw   x6, 12(x5)
addi x6, x0, 50
sw   x6, 16(x5)
addi x7, x0, 0       # running sum
addi x8, x0, 0       # byte offset into array
addi x9, x0, 5       # remaining count
loop:
beq  x9, x0, done
add  x10, x5, x8
lw   x6, 0(x10)
add  x7, x7, x6
addi x8, x8, 4
addi x9, x9, -1
jal  x0, loop
done:
add  x11, x7, x0
ecall
`,

	// fibonacci computes the 11th Fibonacci number via a 10-iteration
	// loop, matching spec.md section 8, scenario 5 exactly: x11=89.
	"fibonacci": `
# fibonacci: 11th Fibonacci number via a 10-iteration loop.
addi x1, x0, 0       # a = F(0)
addi x2, x0, 1       # b = F(1)
addi x3, x0, 10       # iterations remaining
loop:
beq  x3, x0, done
add  x4, x1, x2      # next = a + b
add  x1, x0, x2      # a = b
add  x2, x0, x4      # b = next
addi x3, x3, -1
jal  x0, loop
done:
add  x11, x2, x0
ecall
`,
}

// Get returns the assembly text for the named example program.
func Get(name string) (string, bool) {
	text, ok := programs[name]
	return text, ok
}
