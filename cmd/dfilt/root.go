package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
)

var rootCmd = &cobra.Command{
	Use:   "dfilt [mangled-name ...]",
	Short: "D symbol name demangling filter",
	Long: `dfilt demangles D programming language symbol names.

With arguments, each name is demangled and printed on its own line;
names that do not demangle are printed unchanged.

Without arguments, dfilt acts as a filter: it reads standard input,
replaces every embedded mangled symbol with its demangled form, and
passes everything else through.`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
	RunE: runFilter,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
