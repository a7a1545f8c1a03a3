package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <iso>",
	Short: "Show progress for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway := newGateway(cmd)
		stats, err := gateway.CourseStats(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("total:    %d\n", stats.TotalCards)
		fmt.Printf("mastered: %d\n", stats.Mastered)
		fmt.Printf("due:      %d\n", stats.DueToday)
		return nil
	},
}
