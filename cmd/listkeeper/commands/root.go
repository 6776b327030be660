package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "listkeeper",
	Short: "Listkeeper - a multi-user to-do list API",
	Long: `Listkeeper is a session-authenticated REST API for managing to-do
lists and their items, backed by PostgreSQL. Accounts own their lists; every
read and mutation is scoped to the logged-in account.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
