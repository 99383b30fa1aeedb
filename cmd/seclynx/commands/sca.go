package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewSCACommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sca",
		Short: "Software composition analysis findings and risk summary",
	}

	cmd.AddCommand(newSCASummaryCommand())
	cmd.AddCommand(newSCAFindingsCommand())
	return cmd
}

func newSCASummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <application>",
		Short: "Composition-analysis risk summary (HIGH/MEDIUM/LOW)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetSCASummary(context.Background(), args[0]))
		},
	}
}

func newSCAFindingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findings <application>",
		Short: "Get one page of SCA findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}
			exploitableOnly, _ := cmd.Flags().GetBool("exploitable-only")
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")

			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetSCAFindings(context.Background(), args[0], filters, exploitableOnly, page, size))
		},
	}

	filterFlags(cmd)
	cmd.Flags().Bool("exploitable-only", false, "only findings with an exploit observed in the wild")
	cmd.Flags().Int("page", 0, "page to fetch (0-based)")
	cmd.Flags().Int("size", 50, "findings per page (max 500)")
	return cmd
}
