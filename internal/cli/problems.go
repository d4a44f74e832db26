package cli

import (
	"github.com/spf13/cobra"
)

func newProblemsCmd() *cobra.Command {
	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "Problem catalog operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list ProblemList
			if err := client.Get("/api/v1/problems", &list); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(list)
			return nil
		},
	}

	problemsCmd.AddCommand(&cobra.Command{
		Use:   "get <problem-id>",
		Short: "Show a problem's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var problem Problem
			if err := client.Get("/api/v1/problems/"+args[0], &problem); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(problem)
			return nil
		},
	})

	return problemsCmd
}
