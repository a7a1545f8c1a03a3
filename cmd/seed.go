package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <iso>",
	Short: "Ask the server to seed a starter course for a language",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway := newGateway(cmd)
		if err := gateway.SeedLanguage(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Seeded %s. Run teachme to start practicing.\n", args[0])
		return nil
	},
}
