// Package prdsync implements the prdsync CLI, which keeps the PRD
// markdown task list and the team's Linear issues in step.
package prdsync

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"beast-tins/internal/linear"
)

var rootCmd = &cobra.Command{
	Use:   "prdsync",
	Short: "Sync PRD tasks with Linear issues",
	Long: `prdsync keeps the PRD markdown document and Linear in sync.

push creates a Linear issue for every unchecked PRD task that does not
already exist, labelled by its PRD section. pull checks off PRD tasks
whose matching Linear issues have been completed.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("prd", "PRD.md", "path to the PRD markdown file")

	viper.SetEnvPrefix("PRDSYNC")
	viper.AutomaticEnv()
	viper.BindEnv("linear_api_key", "LINEAR_API_KEY")
	viper.BindEnv("linear_team_id", "LINEAR_TEAM_ID")
}

// newLinearClient builds a Linear client from the environment. Both the
// API key and team ID are required.
func newLinearClient(logger zerolog.Logger) (*linear.Client, error) {
	apiKey := viper.GetString("linear_api_key")
	teamID := viper.GetString("linear_team_id")

	if apiKey == "" {
		return nil, fmt.Errorf("LINEAR_API_KEY is required")
	}
	if teamID == "" {
		return nil, fmt.Errorf("LINEAR_TEAM_ID is required")
	}

	return linear.NewClient(apiKey, teamID, logger), nil
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
}
