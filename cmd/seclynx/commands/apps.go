package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Search and inspect application profiles",
	}

	cmd.AddCommand(newAppsSearchCommand())
	cmd.AddCommand(newAppsProfileCommand())
	return cmd
}

func newAppsSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search applications by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")

			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.SearchApplications(context.Background(), args[0], page, size))
		},
	}

	cmd.Flags().Int("page", 0, "result page (0-based)")
	cmd.Flags().Int("size", 0, "results per page")
	return cmd
}

func newAppsProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <application>",
		Short: "Show an application's profile, scans on file and sandbox count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetApplicationProfile(context.Background(), args[0]))
		},
	}
}
