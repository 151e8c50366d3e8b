package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"circuitdoc/internal/adapter/gate"
)

var gatesVerbose bool

var gatesCmd = &cobra.Command{
	Use:   "gates",
	Short: "List the gates circuitdoc can explain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, e := range gate.Entries() {
			fmt.Fprintf(out, "%-8s %-14s %s\n", headingColor.Sprint(e.Mnemonic), e.Display, dimColor.Sprint(e.Arity))
			if gatesVerbose {
				fmt.Fprintf(out, "         %s\n", e.Template)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gatesCmd)
	gatesCmd.Flags().BoolVarP(&gatesVerbose, "verbose", "v", false, "show explanation templates")
}
