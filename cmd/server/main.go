package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "DevOS portfolio desktop backend",
	Long:  "Serves the DevOS portfolio desktop: window management, the terminal interpreter and live desktop streams.",
	RunE:  runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
