package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/plate-vision/internal/plate"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <marker-id>",
	Short: "Print the plate type a marker identifier stands for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid marker id %q: %w", args[0], err)
		}
		p := plate.New(id)
		if p.Type == plate.Unknown {
			fmt.Fprintln(cmd.OutOrStdout(), p.Type)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows x %d columns)\n", p.Type, p.Layout.Rows, p.Layout.Cols)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
