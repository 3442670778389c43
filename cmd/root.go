package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goamr",
	Short: "Block-structured AMR boundary exchange driver",
	Long: `
Runs explicit diffusion over a block-structured Cartesian mesh, with
ghost-zone exchange and flux correction between mesh blocks distributed
across in-process ranks.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
