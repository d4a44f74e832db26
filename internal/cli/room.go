package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	roomCmd := &cobra.Command{
		Use:   "room",
		Short: "Room operations",
	}

	roomCmd.AddCommand(&cobra.Command{
		Use:   "get <room-id>",
		Short: "Show a room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID := strings.ToUpper(args[0])

			var room Room
			if err := client.Get("/api/v1/rooms/"+roomID, &room); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(room)
			return nil
		},
	})

	return roomCmd
}
