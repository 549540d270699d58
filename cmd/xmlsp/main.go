package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "xmlsp",
		Short: "A toasty XML editor-assistance toolchain",
	}

	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newContextCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
