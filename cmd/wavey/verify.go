package main

import (
	"fmt"

	"github.com/cocosip/go-wavey/render"
	"github.com/cocosip/go-wavey/synth"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check that a file holds the wave pattern pixel for pixel",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().Int("width", synth.DefaultWidth, "Expected image width")
	verifyCmd.Flags().Int("height", synth.DefaultHeight, "Expected image height")
	verifyCmd.Flags().Int("workers", 0, "Rows rendered concurrently for the reference image")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	workers, _ := cmd.Flags().GetInt("workers")

	p := synth.DefaultPattern()
	p.Width, p.Height = width, height

	rep, err := render.Verify(cmd.Context(), args[0], p, workers)
	if rep != nil {
		logger.Infow("verified",
			"path", rep.Path,
			"codec", rep.Codec,
			"width", rep.Width,
			"height", rep.Height,
			"alphaErrors", rep.AlphaErrors,
			"rangeErrors", rep.RangeErrors,
			"mismatches", rep.Mismatches)
		if rep.FirstMismatch != nil {
			logger.Infow("first mismatch", "x", rep.FirstMismatch.X, "y", rep.FirstMismatch.Y)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%dx%d %s)\n", rep.Path, rep.Width, rep.Height, rep.Codec)
	return nil
}
