package prdsync

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"beast-tins/internal/linear"
	"beast-tins/internal/prd"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Create Linear issues for PRD tasks",
	Long: `Read the PRD document and create a Linear issue for each task that
does not already exist, labelled by the category of its section.
Issues whose titles already exist in Linear are skipped.`,
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
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

	existing, err := client.ListIssues(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch existing issues: %w", err)
	}
	existingTitles := make(map[string]bool, len(existing))
	for _, issue := range existing {
		existingTitles[strings.TrimSpace(issue.Title)] = true
	}

	labels, err := labelIndex(ctx, client)
	if err != nil {
		return err
	}

	var created, skipped int
	for _, section := range doc.Sections {
		if len(section.Tasks) == 0 {
			continue
		}
		category := prd.Category(section.Title)
		logger.Info().
			Str("section", section.Title).
			Str("category", category).
			Int("tasks", len(section.Tasks)).
			Msg("processing section")

		labelID, err := ensureLabel(ctx, client, labels, category)
		if err != nil {
			logger.Warn().Err(err).Str("category", category).Msg("label unavailable, creating issues without it")
		}

		for _, task := range section.Tasks {
			if existingTitles[task.Title] {
				logger.Info().Str("title", task.Title).Msg("skipping existing issue")
				skipped++
				continue
			}

			var labelIDs []string
			if labelID != "" {
				labelIDs = []string{labelID}
			}
			description := fmt.Sprintf("Imported from PRD section: %s", section.Title)
			if _, err := client.CreateIssue(ctx, task.Title, description, labelIDs); err != nil {
				return fmt.Errorf("failed to create issue %q: %w", task.Title, err)
			}
			logger.Info().Str("title", task.Title).Msg("created issue")
			created++
		}
	}

	logger.Info().Int("created", created).Int("skipped", skipped).Msg("push completed")
	return nil
}

// labelIndex fetches the team's labels keyed by lowercase name.
func labelIndex(ctx context.Context, client *linear.Client) (map[string]string, error) {
	labels, err := client.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch labels: %w", err)
	}
	index := make(map[string]string, len(labels))
	for _, label := range labels {
		index[strings.ToLower(label.Name)] = label.ID
	}
	return index, nil
}

// ensureLabel returns the ID of the category label, creating it when the
// team does not have one yet.
func ensureLabel(ctx context.Context, client *linear.Client, index map[string]string, category string) (string, error) {
	if id, ok := index[strings.ToLower(category)]; ok {
		return id, nil
	}
	label, err := client.CreateLabel(ctx, category, linear.LabelColor(category))
	if err != nil {
		return "", err
	}
	index[strings.ToLower(category)] = label.ID
	return label.ID, nil
}

func loadDocument(path string) (*prd.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PRD file: %w", err)
	}
	defer f.Close()

	doc, err := prd.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
