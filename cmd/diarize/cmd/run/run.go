package run

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rroosshhaann/whisper-diarization/internal/app"
	"github.com/rroosshhaann/whisper-diarization/internal/app/common"
	"github.com/rroosshhaann/whisper-diarization/internal/app/progress"
	"github.com/rroosshhaann/whisper-diarization/internal/config"
)

var (
	output           string
	whisperModel     string
	language         string
	noStem           bool
	suppressNumerals bool
	batchSize        int
	showProgress     bool
)

// Cmd processes a single audio file without the job API
var Cmd = &cobra.Command{
	Use:   "run <audio>",
	Short: "Transcribe and diarize one file, writing the transcript JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Initialize()
		if err != nil {
			return err
		}

		logger, err := common.NewLogger(cfg.Log.Development)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck

		orchestrator, err := app.InitializeOrchestrator(cfg, logger)
		if err != nil {
			return err
		}

		opts := cfg.JobDefaults()
		if cmd.Flags().Changed("whisper-model") {
			opts.ModelName = whisperModel
		}
		if cmd.Flags().Changed("batch-size") {
			opts.BatchSize = batchSize
		}
		if noStem {
			opts.Stemming = false
		}
		if cmd.Flags().Changed("suppress-numerals") {
			opts.SuppressNumerals = suppressNumerals
		}
		opts.Language = language

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		bar := progress.NewStageBar(progress.Config{Enabled: progress.ShouldShowProgress(showProgress)}, "Diarizing")
		outcome := orchestrator.Run(ctx, args[0], opts, bar)
		if !outcome.OK() {
			bar.Abort()
			return outcome.Err
		}
		bar.Finish()

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Transcript)
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	Cmd.Flags().StringVarP(&whisperModel, "whisper-model", "m", "medium.en", "Whisper model name")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "language code or name (auto-detect when empty)")
	Cmd.Flags().BoolVar(&noStem, "no-stem", false, "disable vocal separation")
	Cmd.Flags().BoolVar(&suppressNumerals, "suppress-numerals", false, "spell out numbers")
	Cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 8, "batch size, 0 for single-pass inference")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "force the progress bar even without a terminal")
}
