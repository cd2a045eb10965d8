package main

import (
	"fmt"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [input]",
	Short: "Export the transition function as a diagram",
	Long:  `Loads the machine description and outputs a Mermaid diagram (stateDiagram-v2) of its transitions.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		input := cli.DefaultInputPath
		if len(args) > 0 {
			input = args[0]
		}

		app := newApp(cmd)
		defer app.Close()

		if err := cli.GraphFile(app, input, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
