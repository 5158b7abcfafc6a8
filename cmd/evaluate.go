package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-ranker/internal/ai"
	"github.com/spigell/interview-ranker/internal/ai/gemini"
	"github.com/spigell/interview-ranker/internal/evaluation"
	"github.com/spigell/interview-ranker/internal/ingest"
	"github.com/spigell/interview-ranker/internal/logger"
	"github.com/spigell/interview-ranker/internal/pipeline"
	"github.com/spigell/interview-ranker/internal/report"
	"github.com/spigell/interview-ranker/internal/secrets"
	"github.com/spigell/interview-ranker/internal/store"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate every candidate transcript with the configured models and store the results",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()
		if err := evaluate(cmd.Context(), cmd, logger); err != nil {
			logger.Fatal("evaluation failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("candidates", "c", "", "file or http(s) URL with \"name: transcript\" lines or a json/yaml list")
	evaluateCmd.Flags().Int("concurrency", 0, "parallel model calls (default from config)")
	evaluateCmd.Flags().Bool("dry-run", false, "do not touch the database, only print the report")
	addReportFlags(evaluateCmd)

	viper.BindPFlag("candidates", evaluateCmd.Flags().Lookup("candidates"))
	viper.BindPFlag("concurrency", evaluateCmd.Flags().Lookup("concurrency"))
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func evaluate(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) error {
	config, err := getConfig(viper.GetViper(), true)
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	logger.Info("starting the interview-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	candidates, skipped, err := ingest.NewSource(logger).Read(ctx, config.Candidates)
	if err != nil {
		return fmt.Errorf("reading candidates: %w", err)
	}

	for _, line := range skipped {
		logger.Warn("skipping malformed candidate entry", zap.Int("line", line.Line), zap.String("reason", line.Reason))
	}

	if len(candidates) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"))
		return nil
	}

	logger.Info("candidates loaded", zap.Int("count", len(candidates)), zap.Int("skipped", len(skipped)))

	evaluators, err := newEvaluators(ctx, config.AI, logger)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(ctx, pipeline.Config{Concurrency: config.Concurrency}, candidates, evaluators, logger)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		logger.Info("skipping persistence", zap.String("reason", "dry run"))
	} else if err := persist(ctx, config.Store, result, logger); err != nil {
		return err
	}

	return printReport(cmd, config, result.Records)
}

func newEvaluators(ctx context.Context, cfg *AIConfig, log *zap.Logger) ([]ai.Evaluator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   envGeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.api-key-file or %s)", err, envGeminiAPIKey)
	}

	evaluators := make([]ai.Evaluator, 0, len(cfg.Models))
	for _, model := range cfg.Models {
		genLogger := log.With(
			zap.String("model", model.Name),
			zap.Int("ai_retry_attempts", cfg.MaxRetries),
		)

		generator, err := gemini.NewGenerator(ctx, apiKey, model.Name, cfg.MaxRetries, genLogger)
		if err != nil {
			return nil, fmt.Errorf("creating generator for %s: %w", model.Label, err)
		}

		evaluators = append(evaluators, gemini.NewEvaluator(generator, model.Label, cfg.RequestsPerMinute, cfg.MaxLogLength, log))
	}

	return evaluators, nil
}

func persist(ctx context.Context, cfg *StoreConfig, result *pipeline.Result, logger *zap.Logger) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// each evaluation run replaces the previous one
	if err := st.Reset(ctx); err != nil {
		return err
	}

	if err := st.Save(ctx, result.RunID, result.Records); err != nil {
		return err
	}

	logger.Info("records saved",
		zap.String("run_id", result.RunID),
		zap.String("driver", cfg.Driver),
		zap.Int("count", len(result.Records)),
	)
	return nil
}

func openStore(ctx context.Context, cfg *StoreConfig) (store.Store, error) {
	src := secrets.Source{
		Name:  "store dsn",
		Value: cfg.DSN,
		File:  cfg.DSNFile,
	}

	switch {
	case cfg.Driver == store.DriverPostgres:
		src.Env = envDatabaseURL
	case strings.TrimSpace(src.Value) == "" && strings.TrimSpace(src.File) == "":
		src.Value = defaultSQLitePath
	}

	dsn, err := secrets.Load(src)
	if err != nil {
		return nil, err
	}

	return store.Open(ctx, cfg.Driver, dsn)
}

func printReport(cmd *cobra.Command, config *Config, records []evaluation.CandidateRecord) error {
	view, err := report.Build(records, config.PrimaryModel)
	if errors.Is(err, report.ErrEmptyCandidateSet) {
		fmt.Fprintln(cmd.OutOrStdout(), report.NoDataMessage)
		return nil
	}
	if err != nil {
		return err
	}

	return report.Render(cmd.OutOrStdout(), view, report.RenderOptions{
		Format: config.Report.Format,
		Color:  config.Report.Color,
	})
}
