package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/convert-engine/internal/history"
	"github.com/pdiddy/convert-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	Long: `History lists past conversion runs recorded in the history database,
newest first. Use "history show <id>" to print the failed files of one run.`,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the failed files of one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (default 20)")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
	if cfg.Dir == "" {
		cfg.Dir = defaultHistoryDir()
	}
	return cfg
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	history.Render(os.Stdout, runs)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := history.NewStore(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	failures, err := store.Failures(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(failures) == 0 {
		fmt.Fprintf(os.Stdout, "run %d recorded no failures\n", runID)
		return nil
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stdout, "%s: %s\n", f.Path, f.Reason)
	}
	return nil
}
