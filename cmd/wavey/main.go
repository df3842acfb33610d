package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/edaniels/golog"
	"github.com/spf13/cobra"
)

var logger golog.Logger

var rootCmd = &cobra.Command{
	Use:   "wavey",
	Short: "Render the 4K wave pattern to Wavey.png",
	Long: `wavey fills a 3840x2160 RGBA image with three phase-shifted sine waves
and writes it to Wavey.png in the working directory. Flags change the size,
output path and format; with no arguments the defaults apply.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger = golog.NewDevelopmentLogger("wavey")
		} else {
			logger = golog.NewLogger("wavey")
		}
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "wavey:", err)
		os.Exit(1)
	}
}
