package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func NewFindingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findings",
		Short: "Retrieve and summarize security findings",
	}

	cmd.AddCommand(newFindingsGetCommand())
	cmd.AddCommand(newFindingsAllCommand())
	cmd.AddCommand(newFindingsSummaryCommand())
	return cmd
}

func newFindingsGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <application>",
		Short: "Get one page of findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")

			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetFindings(context.Background(), args[0], filters, page, size))
		},
	}

	filterFlags(cmd)
	cmd.Flags().Int("page", 0, "page to fetch (0-based)")
	cmd.Flags().Int("size", 50, "findings per page (max 500)")
	return cmd
}

func newFindingsAllCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all <application>",
		Short: "Retrieve all pages of findings (bounded)",
		Long: `Walk every page of findings for an application, bounded by --max-pages.
The result states explicitly whether it is complete or was truncated by
the page ceiling.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}
			maxPages, _ := cmd.Flags().GetInt("max-pages")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.GetFindingsPaginated(context.Background(), args[0], filters, maxPages, pageSize))
		},
	}

	filterFlags(cmd)
	cmd.Flags().Int("max-pages", 0, "page ceiling (default 50)")
	cmd.Flags().Int("page-size", 0, "findings per page (default and max 500)")
	return cmd
}

func newFindingsSummaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <application>",
		Short: "Breakdown-only summary over a sample of up to 1000 findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := filtersFromFlags(cmd)
			if err != nil {
				return err
			}
			toolset, err := buildToolset(nil)
			if err != nil {
				return err
			}
			return printResult(toolset.SummarizeFindings(context.Background(), args[0], filters))
		},
	}

	filterFlags(cmd)
	return cmd
}
