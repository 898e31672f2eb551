package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var (
		flags     conversionFlags
		printGrid bool
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert one image",
		Long: `Convert reads INPUT, turns it into a character grid and renders the grid to OUTPUT.
The output format follows the OUTPUT extension: png, jpg, gif, bmp or tiff.`,
		Example: `  img2ascii convert photo.jpg photo_ascii.png
  img2ascii convert -t 0.1 --cell-size 8 --sample-color photo.jpg out.png
  img2ascii convert -c img2ascii.toml --print photo.jpg out.png`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			conv, err := converter(cmd, cfg)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			logger.Debug("converting", "input", args[0], "output", args[1], "threshold", cfg.Threshold)
			prog := newProgress(logger)

			res, err := conv.ConvertFile(args[0], args[1], cfg.Threshold)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Wrote %s (%dx%d cells)", args[1], res.Cols, res.Rows))

			if printGrid {
				fmt.Fprintln(cmd.OutOrStdout(), res.Grid.String())
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&printGrid, "print", false, "also print the character grid to stdout")
	return cmd
}
