// Command vliw470sim runs the VLIW-470 cycle-accurate simulator: decode a
// bundle program, drive the cycle engine to completion, and write the
// resulting per-cycle trace as JSON.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/oisee/vliw470sim/pkg/decode"
	"github.com/oisee/vliw470sim/pkg/engine"
	"github.com/oisee/vliw470sim/pkg/program"
	"github.com/oisee/vliw470sim/pkg/simlog"
	"github.com/oisee/vliw470sim/pkg/state"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	run := newRunCmd()
	root := &cobra.Command{
		Use:   "vliw470sim",
		Short: "Cycle-accurate simulator for the VLIW-470 research processor",
		// With no subcommand, "vliw470sim <program.json> <result.json>"
		// behaves exactly like "vliw470sim run ...".
		Args: run.Args,
		RunE: run.RunE,
	}
	root.Flags().AddFlagSet(run.Flags())

	root.AddCommand(run, newValidateCmd(), newDisassembleCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var memPath string
	var verbose bool
	var maxCycles int

	cmd := &cobra.Command{
		Use:   "run <program.json> <result.json>",
		Short: "Simulate a program and write the per-cycle trace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			programPath, resultPath := args[0], args[1]

			bundles, err := program.LoadProgram(programPath)
			if err != nil {
				return err
			}
			mem, err := program.LoadMemory(memPath)
			if err != nil {
				return err
			}

			logger := slog.New(simlog.New(os.Stderr, slog.LevelInfo))
			e := engine.New(bundles, mem, logger)
			e.Verbose = verbose

			tr, err := e.Run(maxCycles)
			if err != nil {
				return fmt.Errorf("simulate: %w", err)
			}

			if err := tr.WriteFile(resultPath); err != nil {
				return fmt.Errorf("write trace: %w", err)
			}
			fmt.Printf("Wrote %d cycles to %s\n", len(tr), resultPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&memPath, "memory", "", "Initial memory image (JSON, optional)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log one summary line per cycle")
	cmd.Flags().IntVar(&maxCycles, "max-cycles", 1_000_000, "Abort after this many cycles without terminating")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var memPath string

	cmd := &cobra.Command{
		Use:   "validate <program.json>",
		Short: "Decode a program and report structural/decode errors without simulating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundles, err := program.LoadProgram(args[0])
			if err != nil {
				return err
			}
			if _, err := program.LoadMemory(memPath); err != nil {
				return err
			}

			st := state.New()
			for i, b := range bundles {
				if _, err := decode.ALU("ALU0", b[0], st); err != nil {
					return fmt.Errorf("bundle %d: %w", i, err)
				}
				if _, err := decode.ALU("ALU1", b[1], st); err != nil {
					return fmt.Errorf("bundle %d: %w", i, err)
				}
				if _, err := decode.Multiplier(b[2], st); err != nil {
					return fmt.Errorf("bundle %d: %w", i, err)
				}
				if _, err := decode.Memory(b[3], st); err != nil {
					return fmt.Errorf("bundle %d: %w", i, err)
				}
				if _, err := decode.Branch(b[4], st); err != nil {
					return fmt.Errorf("bundle %d: %w", i, err)
				}
			}
			fmt.Printf("%d bundles decode cleanly\n", len(bundles))
			return nil
		},
	}
	cmd.Flags().StringVar(&memPath, "memory", "", "Initial memory image (JSON, optional)")
	return cmd
}

func newDisassembleCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "disassemble <program.json>",
		Short: "Print a per-slot listing of the program's bundles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundles, err := program.LoadProgram(args[0])
			if err != nil {
				return err
			}

			st := state.New()
			slotNames := [5]string{"ALU0", "ALU1", "Multiplier", "Memory", "Branch"}
			for i, b := range bundles {
				fmt.Printf("%4d:\n", i)
				for slot, text := range b {
					fmt.Printf("  %-10s %s\n", slotNames[slot], text)
				}

				if debug {
					alu0, _ := decode.ALU("ALU0", b[0], st)
					alu1, _ := decode.ALU("ALU1", b[1], st)
					mul, _ := decode.Multiplier(b[2], st)
					memOp, _ := decode.Memory(b[3], st)
					br, _ := decode.Branch(b[4], st)
					spew.Dump(alu0, alu1, mul, memOp, br)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Dump the raw decoded latch structures via go-spew")
	return cmd
}
