package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dlang-tools/dfilt/demangle"
	"github.com/spf13/cobra"
)

func runFilter(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		for _, name := range args {
			demangled, err := demangle.Demangle(name)
			if err != nil {
				// Not an error in filter semantics; echo the input.
				demangled = name
			}
			if _, err := fmt.Fprintln(output, demangled); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	return filterStream()
}

// filterStream rewrites stdin line by line, substituting demangled
// names for any mangled symbols found in the text.
func filterStream() error {
	r := bufio.NewReader(os.Stdin)

	w := bufio.NewWriter(output)
	for {
		// Lines keep their own terminators, so every byte outside a
		// symbol reaches the output unchanged.
		line, err := r.ReadString('\n')
		if _, werr := w.WriteString(demangle.Filter(line)); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
	return w.Flush()
}
