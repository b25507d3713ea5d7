package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seatctl",
	Short: "Operator tool for the match seat reservation service",
	Long:  `Mint access tokens and manage the gating state of matches.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		}
	},
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(tokenCmd, statusCmd, reconcileCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
