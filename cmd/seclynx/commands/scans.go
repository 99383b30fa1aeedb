package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewScansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scans <application>",
		Short: "List the scans recorded against an application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanType, _ := cmd.Flags().GetString("scan-type")

			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.ListScans(context.Background(), args[0], scanType))
		},
	}

	cmd.Flags().String("scan-type", "", "restrict to one scan type (STATIC, DYNAMIC, MANUAL, SCA)")
	return cmd
}
