// Command rv32run is the multi-subcommand CLI front-end for the
// simulator facade: run, step, asm, and examples. It follows the
// teacher pack's cobra-based z80opt tool (cmd/z80opt/main.go in the
// oisee-z80-optimizer source) rather than the teacher repo's own
// flag-based cmd/vm and cmd/interp, since it needs more than one verb;
// cobra is a direct requirement in this module's go.mod.
package main

import (
	"fmt"
	"os"

	"github.com/bassosimone/rv32sim/internal/config"
	"github.com/bassosimone/rv32sim/pkg/asm"
	"github.com/bassosimone/rv32sim/pkg/isa"
	"github.com/bassosimone/rv32sim/pkg/sim"
	"github.com/bassosimone/rv32sim/pkg/vm"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "rv32run",
		Short: "Run, step, and inspect RV32I programs on the simulator",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the execution log (step: each instruction; run: the last 10 retired)")

	var maxSteps int
	runCmd := &cobra.Command{
		Use:   "run [file.s]",
		Short: "Assemble and run a program to completion or a step limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			text, err := readFile(args[0])
			if err != nil {
				return err
			}
			s := sim.New(cfg.Execution.MemorySize, cfg.Execution.MaxInstructions)
			if ok, msg := s.LoadAssembly(text); !ok {
				return fmt.Errorf("load: %s", msg)
			}
			limit := maxSteps
			if limit == 0 {
				limit = cfg.Execution.MaxSteps
			}
			ok, msg := s.Run(limit)
			if verbose || cfg.Execution.EnableTrace {
				printLog(s.State().RecentLog)
			}
			printState(s)
			if !ok {
				return fmt.Errorf("run: %s", msg)
			}
			fmt.Println(msg)
			return nil
		},
	}
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "override the configured step limit (0 = use config default)")

	var stepCount int
	stepCmd := &cobra.Command{
		Use:   "step [file.s]",
		Short: "Assemble a program and single-step it N times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			text, err := readFile(args[0])
			if err != nil {
				return err
			}
			s := sim.New(cfg.Execution.MemorySize, cfg.Execution.MaxInstructions)
			if ok, msg := s.LoadAssembly(text); !ok {
				return fmt.Errorf("load: %s", msg)
			}
			for i := 0; i < stepCount; i++ {
				ok, msg := s.Step()
				if verbose {
					log := s.State().RecentLog
					if len(log) > 0 {
						printLog(log[len(log)-1:])
					}
				}
				if !ok {
					printState(s)
					return fmt.Errorf("step %d: %s", i+1, msg)
				}
			}
			printState(s)
			return nil
		},
	}
	stepCmd.Flags().IntVar(&stepCount, "count", 1, "number of instructions to step")

	asmCmd := &cobra.Command{
		Use:   "asm [file.s]",
		Short: "Assemble a program and print the resulting hex-word listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fp, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fp.Close()
			words, err := asm.Assemble(fp)
			if err != nil {
				return fmt.Errorf("assemble: %w", err)
			}
			for _, w := range words {
				fmt.Printf("%08x\n", w.Instruction)
			}
			return nil
		},
	}

	examplesCmd := &cobra.Command{
		Use:   "examples [name]",
		Short: "List or run a bundled example program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range sim.ExampleProgramNames() {
					fmt.Println(name)
				}
				return nil
			}
			text, ok := sim.ExampleProgram(args[0])
			if !ok {
				return fmt.Errorf("unknown example program: %s", args[0])
			}
			cfg := config.DefaultConfig()
			s := sim.New(cfg.Execution.MemorySize, cfg.Execution.MaxInstructions)
			if ok, msg := s.LoadAssembly(text); !ok {
				return fmt.Errorf("load: %s", msg)
			}
			ok, msg := s.Run(cfg.Execution.MaxSteps)
			printState(s)
			if !ok {
				return fmt.Errorf("run: %s", msg)
			}
			fmt.Println(msg)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, stepCmd, asmCmd, examplesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printLog(entries []sim.LogEntry) {
	for _, e := range entries {
		fmt.Printf("  pc=%#08x  %s\n", e.PCBefore, vm.Disassemble(e.Instruction))
		for _, c := range e.ChangedRegisters {
			fmt.Printf("    %s: %#x -> %#x\n", isa.ABIName(int(c.Index)), c.Old, c.New)
		}
	}
}

func printState(s *sim.Simulator) {
	st := s.State()
	fmt.Printf("pc=%#08x  instructions=%d  running=%v\n", st.PC, st.InstructionCount, st.Running)
	names := s.RegisterABINames()
	for i, v := range st.Registers {
		fmt.Printf("  %-5s = %#08x\n", names[i], v)
	}
}
