package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewSandboxesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sandboxes <application>",
		Short: "List an application's development sandboxes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.ListSandboxes(context.Background(), args[0]))
		},
	}
}
