package cmd

import (
	"fmt"
	"os"

	"grambazaar/config"
	"grambazaar/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grambazaar",
	Short: "GramBazaar marketplace backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		utils.InitializeLogger()
		utils.RegisterJSONFieldNames()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(makeAdminCmd())
}

// Execute runs the root command; it defaults to serve when no subcommand is given.
func Execute() {
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
