package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <iso>",
	Short: "Reset all progress for a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this wipes all progress for %s; re-run with --yes to confirm", args[0])
		}

		gateway := newGateway(cmd)
		if err := gateway.ResetCourse(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Course progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation")
}
