package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assetflow",
	Short: "Asset approval workflow service",
	Long:  `Tracks company assets and routes asset requests and issue reports through department head and admin approval.`,
}

func init() {
	// bare invocation serves
	rootCmd.RunE = runServer
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
