// Command casm assembles champion source files into .cor executables.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corewar-vm/corewar/internal/asm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "casm",
		Short: "assemble champion source into .cor executables",
	}

	var output string
	buildCmd := &cobra.Command{
		Use:   "build <source.s>",
		Short: "assemble one source file into a .cor executable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return build(args[0], output)
		},
	}
	buildCmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: source stem + .cor)")

	rootCmd.AddCommand(buildCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func build(sourcePath, output string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}

	if output == "" {
		stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		output = stem + ".cor"
	}

	compiled, err := asm.Compile(string(src), os.Stderr)
	if err != nil {
		return fmt.Errorf("%s: %w", sourcePath, err)
	}

	return os.WriteFile(output, compiled, 0o644)
}
