package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"ecoatlas/internal/models"
	contextutils "ecoatlas/internal/utils"

	"github.com/spf13/cobra"
)

// IdeaCommands returns the idea moderation commands
func IdeaCommands(env *Env) *cobra.Command {
	ideasCmd := &cobra.Command{
		Use:   "ideas",
		Short: "Idea moderation commands",
		Long: `Idea moderation commands.

Available commands:
  list    - List ideas, optionally filtered by status
  status  - Move an idea to a new moderation status`,
	}

	ideasCmd.AddCommand(listIdeasCmd(env))
	ideasCmd.AddCommand(setStatusCmd(env))

	return ideasCmd
}

func listIdeasCmd(env *Env) *cobra.Command {
	var filter models.IdeaFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ideas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := contextutils.ValidateStruct(filter); err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, err := env.ideaService(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to connect to database")
			}

			ideas, err := svc.ListIdeas(ctx, filter)
			if err != nil {
				return contextutils.WrapError(err, "failed to list ideas")
			}
			if len(ideas) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ideas found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tVOTES\tCATEGORY\tTITLE")
			for _, idea := range ideas {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", idea.ID, idea.Status, idea.Votes, idea.Category, idea.Title)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&filter.Status, "status", "", "Only ideas with this status")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Only ideas in this category")
	cmd.Flags().StringVar(&filter.Sort, "sort", "", `Sort by "votes" or creation time`)
	cmd.Flags().StringVar(&filter.Order, "order", "", `"asc" or "desc"`)
	return cmd
}

func setStatusCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an idea to a new moderation status",
		Long:  fmt.Sprintf("Move an idea to a new moderation status. Valid statuses: %v", models.IdeaStatuses),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityWarn, "Invalid id", args[0])
			}

			ctx := cmd.Context()
			svc, err := env.ideaService(ctx)
			if err != nil {
				return contextutils.WrapError(err, "failed to connect to database")
			}

			idea, err := svc.SetIdeaStatus(ctx, id, models.IdeaStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Idea %d %q is now %s\n", idea.ID, idea.Title, idea.Status)
			return nil
		},
	}
}
