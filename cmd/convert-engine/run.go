package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/convert-engine/internal/convert"
	"github.com/pdiddy/convert-engine/internal/history"
	"github.com/pdiddy/convert-engine/internal/locate"
	"github.com/pdiddy/convert-engine/internal/office"
	"github.com/pdiddy/convert-engine/internal/report"
	"github.com/pdiddy/convert-engine/internal/runner"
	"github.com/pdiddy/convert-engine/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [directories...]",
	Short: "Convert all matching files under the given directories",
	Long: `Run walks the given directories recursively, collects every file whose
extension matches the source format, and converts each one to the target
format on a bounded worker pool. Progress and per-file status print as
files finish; failed files are listed at the end. Outputs are written next
to their inputs, with a "(N)" suffix inserted on name collisions.

Supported conversions: pdf to png (one PNG per page), png to pdf (covers
.png/.jpg/.jpeg inputs), and excel to pdf (requires LibreOffice).`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("from", "", "source format: pdf, png, or excel (required)")
	runCmd.Flags().String("to", "", "target format: pdf or png (required)")
	runCmd.Flags().Int("workers", 0, "maximum concurrent conversions (default 4)")
	runCmd.Flags().Int("dpi", 0, "render/encode resolution (default 300)")
	runCmd.Flags().String("soffice-path", "", "path to the soffice executable (default: resolve from PATH)")
	runCmd.Flags().Duration("tool-timeout", 0, "timeout per external-tool invocation (default 2m)")
	runCmd.Flags().String("report", "", "write a YAML run report to this path")
	runCmd.Flags().Bool("no-history", false, "do not record this run in the history database")
	runCmd.MarkFlagRequired("from")
	runCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more root directories to search")
	}

	fromArg, _ := cmd.Flags().GetString("from")
	toArg, _ := cmd.Flags().GetString("to")
	source, err := types.ParseFormat(fromArg)
	if err != nil {
		return err
	}
	target, err := types.ParseFormat(toArg)
	if err != nil {
		return err
	}
	if source == target {
		return fmt.Errorf("source and target formats are both %q", source)
	}

	cfg := engineConfig(cmd)

	// The office tool is only validated when the run actually needs it,
	// so image and PDF conversions work without LibreOffice installed.
	var tool *office.Tool
	if source == types.FormatExcel && target == types.FormatPDF {
		tool, err = office.New(cfg.Office)
		if err != nil {
			return err
		}
	}
	dispatcher := convert.NewDispatcher(cfg.Convert, tool)

	files := locate.Find(args, source, os.Stderr)

	job := types.ConversionJob{
		Roots:   args,
		Source:  source,
		Target:  target,
		Workers: cfg.Convert.Workers,
	}

	dispatch := func(ctx context.Context, task types.FileTask) ([]string, error) {
		return dispatcher.Dispatch(ctx, task.InputPath, source, target)
	}

	started := time.Now()
	outcomes, final := runner.Run(cmd.Context(), files, dispatch, job.Workers)
	for o := range outcomes {
		fmt.Fprintf(os.Stdout, "[%3d%%] %s\n", o.Percent, o.Message)
	}
	result := <-final
	finished := time.Now()

	if !result.NoFiles() {
		fmt.Fprintf(os.Stdout, "\nRun summary: %d converted, %d failed (total: %d)\n",
			result.Succeeded(), len(result.Failures), result.Total)
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stdout, "  %s: %s\n", f.Path, f.Reason)
		}
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory && cfg.History.Dir != "" {
		if err := recordRun(cmd.Context(), cfg.History, started, job, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record run history: %v\n", err)
		}
	}

	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		if err := report.Write(reportPath, report.New(started, finished, job, result)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Report written to %s\n", reportPath)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", len(result.Failures))
	}
	return nil
}

func recordRun(ctx context.Context, cfg types.HistoryConfig, started time.Time, job types.ConversionJob, result types.RunResult) error {
	store, err := history.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Record(ctx, started, job, result)
	return err
}

// engineConfig assembles the run configuration from flags, falling back to
// viper-managed config file and environment values.
func engineConfig(cmd *cobra.Command) types.EngineConfig {
	var cfg types.EngineConfig

	cfg.Convert.Workers, _ = cmd.Flags().GetInt("workers")
	if cfg.Convert.Workers == 0 {
		cfg.Convert.Workers = viper.GetInt("convert.workers")
	}
	cfg.Convert.DPI, _ = cmd.Flags().GetInt("dpi")
	if cfg.Convert.DPI == 0 {
		cfg.Convert.DPI = viper.GetInt("convert.dpi")
	}

	cfg.Office.ExecutablePath, _ = cmd.Flags().GetString("soffice-path")
	if cfg.Office.ExecutablePath == "" {
		cfg.Office.ExecutablePath = viper.GetString("office.executable_path")
	}
	cfg.Office.Timeout, _ = cmd.Flags().GetDuration("tool-timeout")
	if cfg.Office.Timeout == 0 {
		cfg.Office.Timeout = viper.GetDuration("office.timeout")
	}

	cfg.History.Dir = viper.GetString("history.dir")
	if cfg.History.Dir == "" {
		cfg.History.Dir = defaultHistoryDir()
	}
	cfg.History.MaxResults = viper.GetInt("history.max_results")

	return cfg
}
