package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennt44/teachme/internal/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List capture devices for TEACHME_DEVICE",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := audio.NewContext()
		if err != nil {
			return err
		}
		defer ctx.Close()

		devices, err := ctx.Devices()
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No capture devices found.")
			return nil
		}
		for _, d := range devices {
			fmt.Println(d.Name)
		}
		return nil
	},
}
