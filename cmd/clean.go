package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop every table holding evaluation results",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()
		if err := clean(cmd.Context(), logger); err != nil {
			logger.Fatal("cleaning the database", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func clean(ctx context.Context, logger *zap.Logger) error {
	config, err := getConfig(viper.GetViper(), false)
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	st, err := openStore(ctx, config.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Drop(ctx); err != nil {
		return err
	}

	logger.Info("database cleaned", zap.String("driver", config.Store.Driver))
	return nil
}
