package cli

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
)

func newVideoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "video INPUT OUTPUT",
		Short: "Convert a video (not supported)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return img2ascii.NewConverter().ConvertVideo(args[0], args[1])
		},
	}
}
