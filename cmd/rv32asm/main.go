// Command rv32asm assembles RV32I source into a hex-word listing. It
// mirrors the teacher's standalone cmd/asm (flag package, log.Fatal on
// error, write straight to stdout) rather than the cobra-based
// rv32run, since it is a single-purpose filter, not a multi-command
// tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bassosimone/rv32sim/pkg/asm"
)

func main() {
	log.SetFlags(0)
	filename := flag.String("f", "", "assembly source file")
	flag.Parse()
	if *filename == "" {
		log.Fatal("usage: rv32asm -f <assembly-file>")
	}

	fp, err := os.Open(*filename)
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()

	words, err := asm.Assemble(fp)
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range words {
		fmt.Printf("%08x\n", w.Instruction)
	}
}
