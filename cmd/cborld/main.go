// Command cborld decodes CBOR-LD files into plain JSON-LD documents and
// inspects their binary structure.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cborld",
	Short: "Decode and inspect CBOR-LD documents",
	Long: `cborld works with CBOR-LD files: compact binary documents that
compress JSON-LD by replacing terms and values with integer codes derived
from the document's linked-data contexts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decode diagnostics to stderr")
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cborld: %v\n", err)
		os.Exit(1)
	}
}
