package prdsync

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Check off PRD tasks completed in Linear",
	Long: `Fetch completed issues from Linear and check off the matching task
checkboxes in the PRD document. Tasks are matched by exact title.`,
	RunE: runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newLinearClient(logger)
	if err != nil {
		return err
	}

	prdPath, _ := cmd.Flags().GetString("prd")
	doc, err := loadDocument(prdPath)
	if err != nil {
		return err
	}

	completed, err := client.ListCompletedIssues(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch completed issues: %w", err)
	}
	logger.Info().Int("completed", len(completed)).Msg("fetched completed issues")

	var updated, alreadyDone, notFound int
	for _, issue := range completed {
		task := doc.Find(issue.Title)
		switch {
		case task == nil:
			logger.Warn().Str("title", issue.Title).Msg("task not found in PRD")
			notFound++
		case task.Done:
			alreadyDone++
		case doc.MarkDone(issue.Title):
			logger.Info().Str("title", issue.Title).Msg("checked off task")
			updated++
		}
	}

	if updated > 0 {
		if err := os.WriteFile(prdPath, []byte(doc.Render()+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write PRD file: %w", err)
		}
	}

	logger.Info().
		Int("updated", updated).
		Int("already_done", alreadyDone).
		Int("not_found", notFound).
		Msg("pull completed")
	return nil
}
