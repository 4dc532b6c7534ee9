package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(departmentsCmd, testsCmd, statsCmd, clearCacheCmd)
}

var departmentsCmd = &cobra.Command{
	Use:   "departments",
	Short: "List the known departments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		depts := examService.Departments()
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), depts)
		}
		renderDepartments(cmd.OutOrStdout(), depts)
		return nil
	},
}

var testsCmd = &cobra.Command{
	Use:   "tests <slug>",
	Short: "Print the exam schedule of one department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := examService.GetTests(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), groups)
		}
		renderGroups(cmd.OutOrStdout(), groups)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [slug]",
	Short: "Print student statistics for all departments, or for one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := "All departments"
		summary, err := func() (any, error) {
			if len(args) == 1 {
				title = args[0]
				return examService.DepartmentStats(cmd.Context(), args[0])
			}
			return examService.GetStats(cmd.Context())
		}()
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), summary)
		}
		return renderStats(cmd.OutOrStdout(), title, summary)
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Remove all cached upstream responses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cleared, err := examService.ClearCache(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"cleared": cleared})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cache cleared: %t\n", cleared)
		return nil
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
