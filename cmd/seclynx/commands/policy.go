package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewPolicyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policy <application>",
		Short: "Show an application's policy compliance status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetPolicyCompliance(context.Background(), args[0]))
		},
	}
}
