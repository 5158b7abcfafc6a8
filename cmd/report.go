package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/interview-ranker/internal/evaluation"
	"github.com/spigell/interview-ranker/internal/report"
)

const (
	PromptBack = "back"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the hiring report for stored evaluation results",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()
		if err := showReport(cmd.Context(), cmd, logger); err != nil {
			logger.Fatal("building report", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("run", "", "only show records of this evaluation run id")
	reportCmd.Flags().BoolP("interactive", "i", false, "choose candidates and show every model's evaluation")
	addReportFlags(reportCmd)
}

// addReportFlags registers output flags shared by commands that print a report.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "", "report format: text, json or yaml")
	cmd.Flags().Bool("color", false, "style text reports for a terminal")

	// flags take effect only when passed, so config values survive otherwise
	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		if f := cmd.Flags().Lookup("format"); f.Changed {
			viper.Set("report.format", f.Value.String())
		}
		if f := cmd.Flags().Lookup("color"); f.Changed {
			viper.Set("report.color", f.Value.String() == "true")
		}
	}
}

func showReport(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) error {
	config, err := getConfig(viper.GetViper(), false)
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	st, err := openStore(ctx, config.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	runID, _ := cmd.Flags().GetString("run")
	records, err := st.Load(ctx, runID)
	if err != nil {
		return err
	}

	logger.Debug("records loaded", zap.String("run_id", runID), zap.Int("count", len(records)))

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.NoDataMessage)
		return nil
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return browse(cmd, records, config.Report.Color)
	}

	return printReport(cmd, config, records)
}

// browse lets the user pick candidates one after another until they go back.
func browse(cmd *cobra.Command, records []evaluation.CandidateRecord, color bool) error {
	names := report.CandidateNames(records)

	for {
		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: menuItems(names),
			Size:  10,
		}

		idx, _, err := candidatePrompt.Run()
		if err != nil {
			return err
		}

		name, ok := selectedName(names, idx)
		if !ok {
			return nil
		}

		if err := report.RenderDetail(cmd.OutOrStdout(), report.Detail(records, name), color); err != nil {
			return err
		}
	}
}

// menuItems lists the candidates followed by the back entry. Selections are resolved by
// position, so a candidate named like the back entry is still reachable.
func menuItems(names []string) []string {
	items := make([]string, 0, len(names)+1)
	items = append(items, names...)
	return append(items, PromptBack)
}

func selectedName(names []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(names) {
		return "", false
	}
	return names[idx], true
}
