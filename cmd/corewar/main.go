// Command corewar runs and inspects compiled champion matches.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/corewar-vm/corewar/internal/corfile"
	"github.com/corewar-vm/corewar/internal/debugger"
	"github.com/corewar-vm/corewar/internal/instr"
	"github.com/corewar-vm/corewar/internal/machine"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corewar",
		Short: "run and inspect corewar matches",
	}

	var debug bool
	var maxCycles int
	runCmd := &cobra.Command{
		Use:   "run <file...>",
		Short: "run a match to completion (or until --max-cycles)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(args, debug, maxCycles)
		},
	}
	runCmd.Flags().BoolVar(&debug, "debug", false, "launch the interactive debugger instead of running to completion")
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 0, "stop after this many cycles (0 = unbounded)")

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "print a compiled champion's header and disassembly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect(args[0])
		},
	}

	rootCmd.AddCommand(runCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMatch(paths []string, debug bool, maxCycles int) error {
	champions, err := loadChampions(paths)
	if err != nil {
		return err
	}

	m, err := machine.New(champions, os.Stdout)
	if err != nil {
		return err
	}

	if debug {
		return debugger.Run(m)
	}

	summary := m.Run(maxCycles)
	fmt.Printf("match ended after processing %d process slots; cycles_to_die=%d\n", summary.RemainingProcesses, summary.CyclesToDie)
	if id, ok := m.LastLivingChampion(); ok {
		fmt.Printf("last living champion: %d\n", id)
	}
	for id, count := range summary.LiveCounts {
		fmt.Printf("champion %d called live %d time(s)\n", id, count)
	}
	return nil
}

func loadChampions(paths []string) ([]machine.Champion, error) {
	champions := make([]machine.Champion, 0, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		exe, err := corfile.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		champions = append(champions, machine.Champion{
			ID:      int32(i + 1),
			Name:    exe.Header.Name,
			Comment: exe.Header.Comment,
			Program: exe.Program,
		})
	}
	return champions, nil
}

func inspect(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	exe, err := corfile.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("name:    %q\n", exe.Header.Name)
	fmt.Printf("comment: %q\n", exe.Header.Comment)
	fmt.Printf("size:    %d bytes\n\n", exe.Header.Size)

	r := bytes.NewReader(exe.Program)
	for r.Len() > 0 {
		offset := len(exe.Program) - r.Len()
		in, err := instr.ReadFrom(r)
		if err != nil {
			if err != io.EOF && err != io.ErrUnexpectedEOF {
				fmt.Printf("%04d: <undecodable: %v>\n", offset, err)
			}
			break
		}
		fmt.Printf("%04d: %s\n", offset, in)
	}
	return nil
}
