package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tradelab version %s\n", version)
		fmt.Println("A trade-risk calculator and journal analytics toolkit")
		fmt.Println("https://github.com/rustyeddy/tradelab")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
