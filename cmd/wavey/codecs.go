package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cocosip/go-wavey/codec"
	"github.com/spf13/cobra"
)

var codecsCmd = &cobra.Command{
	Use:   "codecs",
	Short: "List the available output codecs",
	Args:  cobra.NoArgs,
	RunE:  runCodecs,
}

func init() {
	rootCmd.AddCommand(codecsCmd)
}

func runCodecs(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEXTENSIONS\tUID")
	for _, c := range codec.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name(), strings.Join(c.Extensions(), " "), c.UID())
	}
	return tw.Flush()
}
