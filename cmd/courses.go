package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List courses on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		gateway := newGateway(cmd)
		courses, err := gateway.ListCourses(cmd.Context())
		if err != nil {
			return err
		}
		if len(courses) == 0 {
			fmt.Println("No courses yet. Seed one with: teachme seed <iso>")
			return nil
		}
		for _, course := range courses {
			fmt.Printf("%-5s %-20s %d cards\n", course.ISO, course.Language, course.CardCount)
		}
		return nil
	},
}
