package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rroosshhaann/whisper-diarization/cmd/diarize/cmd/run"
	"github.com/rroosshhaann/whisper-diarization/cmd/diarize/cmd/serve"
	"github.com/rroosshhaann/whisper-diarization/cmd/diarize/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diarize",
	Short: "Speaker-attributed transcription service",
	Long: `diarize transcribes audio and attributes every word to a speaker.
- serve: run the asynchronous job API backed by a single inference worker
- run: process one file locally and print the transcript JSON`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
