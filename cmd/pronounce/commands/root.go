package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/kbukum/pronounce/app"
	"github.com/kbukum/pronounce/config"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "pronounce",
	Short: "Pronunciation assessment service",
	Long: `Scores recordings of a target word from acoustic features, a trained
classifier or a reference recording, and explains the score.

Configuration is read from --config (or ./cmd/pronounce/config.yml,
./config.yml), then --env-file, then PRONOUNCE_* environment variables:

  PRONOUNCE_SERVER_PORT=9000
  PRONOUNCE_SCORING_POLICY=lenient
  PRONOUNCE_TRANSCRIPTION_ENABLED=true`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", ".env file applied before PRONOUNCE_* variables")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(referencesCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*app.Config, error) {
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	return app.Load(opts...)
}

// newTaskApp builds the pipeline without the HTTP server. Logs go to
// stderr so stdout carries only the command's output.
func newTaskApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Logging.Output = "stderr"
	return app.New(ctx, cfg, app.WithoutServer(), app.WithSummaryWriter(nil))
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func printYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
