package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennt44/teachme/internal/tutor"
)

var addCmd = &cobra.Command{
	Use:   "add <iso> <front> <back> [hint]",
	Short: "Add one card to a course",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		card := tutor.NewCard{Front: args[1], Back: args[2]}
		if len(args) == 4 {
			card.Hint = args[3]
		}

		gateway := newGateway(cmd)
		if err := gateway.AddCard(cmd.Context(), args[0], card); err != nil {
			return err
		}
		fmt.Printf("Added %q to %s.\n", card.Front, args[0])
		return nil
	},
}
