package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
)

func newBatchCmd() *cobra.Command {
	var (
		flags  conversionFlags
		outDir string
		ext    string
	)

	cmd := &cobra.Command{
		Use:   "batch INPUT...",
		Short: "Convert many images into a directory",
		Long: `Batch converts every INPUT into --out-dir, keeping the base name.
A failed input is logged and does not stop the others; the command fails
if any input failed.`,
		Example: `  img2ascii batch --out-dir out/ images/*.png
  img2ascii batch --out-dir out/ --ext bmp --workers 2 a.jpg b.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			conv, err := converter(cmd, cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			jobs := make([]img2ascii.Job, len(args))
			for i, in := range args {
				jobs[i] = img2ascii.Job{Input: in, Output: outputPath(outDir, in, ext)}
			}

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			results := conv.ConvertBatch(cmd.Context(), jobs, cfg.Threshold)

			failed := img2ascii.Failed(results)
			for _, r := range failed {
				logger.Error("conversion failed", "input", r.Job.Input, "kind", img2ascii.KindOf(r.Err), "err", r.Err)
			}
			prog.done(fmt.Sprintf("Converted %d of %d images", len(results)-len(failed), len(results)))

			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d conversions failed", len(failed), len(results))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "output directory")
	cmd.Flags().StringVar(&ext, "ext", "", "output format extension (default: same as input)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent conversions (default: one per CPU)")
	return cmd
}

// outputPath maps an input file to its path in dir, optionally replacing
// the extension.
func outputPath(dir, input, ext string) string {
	base := filepath.Base(input)
	if ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + strings.TrimPrefix(ext, ".")
	}
	return filepath.Join(dir, base)
}
