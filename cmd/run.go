package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/notargets/goamr/driver"
	"github.com/notargets/goamr/input"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a diffusion problem from a YAML input file",
	Long: `
Builds the mesh and rank partition described by the input file, fills the
initial condition, and steps the explicit diffusion operator to the final
time, reporting the conserved integral before and after.

goamr run -i input.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("input")

		p := input.Defaults()
		if path != "" {
			var err error
			p, err = input.ReadFile(path)
			if err != nil {
				log.Fatal(err)
			}
		}
		if err := p.Validate(); err != nil {
			log.Fatal(err)
		}
		p.Print()

		w, err := driver.NewWorld(p)
		if err != nil {
			log.Fatal(err)
		}
		before := w.TotalIntegral(0)
		if err := w.Run(); err != nil {
			log.Fatal(err)
		}
		after := w.TotalIntegral(0)
		fmt.Printf("conserved integral: %.12e -> %.12e\n", before, after)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("input", "i", "", "YAML input file; defaults used when omitted")
}
