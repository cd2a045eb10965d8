package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect stored simulation reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd)
		defer app.Close()

		if err := cli.ListReports(cmd.Context(), app, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored report as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd)
		defer app.Close()

		if err := cli.ShowReport(cmd.Context(), app, args[0], os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd)
		defer app.Close()

		if err := cli.DeleteReport(cmd.Context(), app, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd, reportsDeleteCmd)
	rootCmd.AddCommand(reportsCmd)
}
