package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/app/assembler"
	"github.com/rroosshhaann/whisper-diarization/internal/app/model"
)

// WorkDirs creates and removes scratch directories for intermediate audio
type WorkDirs interface {
	NewWorkDir(prefix string) (string, error)
	RemoveWorkDir(dir string) error
}

// Orchestrator runs the fixed sequence of inference stages for one job
type Orchestrator struct {
	engines  Engines
	workDirs WorkDirs
	logger   *zap.Logger
	resolve  func(assembler.Input) ([]model.SpeakerWord, []model.Sentence)
}

// NewOrchestrator creates an orchestrator over the given collaborators
func NewOrchestrator(engines Engines, workDirs WorkDirs, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		engines:  engines,
		workDirs: workDirs,
		logger:   logger,
		resolve:  assembler.Resolve,
	}
}

// Run processes one audio file. Every stage but vocal separation is fatal on error;
// the first failure is returned in the Outcome and no partial result is produced.
func (o *Orchestrator) Run(ctx context.Context, audioPath string, opts model.JobOptions, sink ProgressSink) Outcome {
	if sink == nil {
		sink = DiscardProgress
	}
	logger := o.logger.With(zap.String("audio", filepath.Base(audioPath)))

	language, overridden, err := ResolveLanguage(opts.Language, opts.ModelName)
	if err != nil {
		return Failed("", err)
	}
	if overridden {
		logger.Warn("English-only model selected, forcing language to en",
			zap.String("model", opts.ModelName), zap.String("requested", opts.Language))
	}

	source := audioPath
	var workDir string
	defer func() {
		o.removeWorkDir(logger, workDir)
	}()

	if opts.Stemming {
		o.enter(logger, sink, model.StageSeparatingVocals)
		workDir, source = o.separate(ctx, logger, audioPath)
	}

	o.enter(logger, sink, model.StageTranscribing)
	transcription, err := o.engines.Transcriber.Transcribe(ctx, source, TranscribeOptions{
		Model:            opts.ModelName,
		Language:         language,
		BatchSize:        opts.BatchSize,
		VADFilter:        opts.BatchSize <= 0,
		SuppressNumerals: opts.SuppressNumerals,
	})
	if err != nil {
		return Failed(model.StageTranscribing, err)
	}

	detected := strings.ToLower(transcription.Language)
	if detected == "" {
		detected = language
	}

	o.enter(logger, sink, model.StageAligning)
	alignLanguage, err := AlignmentLanguage(detected)
	if err != nil {
		return Failed(model.StageAligning, err)
	}
	words, err := o.engines.Aligner.Align(ctx, source, transcription.Text, alignLanguage, opts.BatchSize)
	if err != nil {
		return Failed(model.StageAligning, err)
	}

	o.enter(logger, sink, model.StageDiarizing)
	segments, err := o.engines.Diarizer.Diarize(ctx, source)
	if err != nil {
		return Failed(model.StageDiarizing, err)
	}

	o.enter(logger, sink, model.StagePostProcessing)
	input := assembler.Input{
		Words:     words,
		Segments:  segments,
		ModelName: opts.ModelName,
	}
	if SupportsPunctuation(detected) {
		texts := make([]string, len(words))
		for i, w := range words {
			texts[i] = w.Text
		}
		labels, err := o.engines.Punctuator.Punctuate(ctx, texts)
		if err != nil {
			return Failed(model.StagePostProcessing, err)
		}
		input.Punctuate = true
		input.Labels = labels
	} else {
		logger.Warn("punctuation restoration not available, using original punctuation",
			zap.String("language", detected))
	}

	resolved, sentences := o.resolve(input)

	o.enter(logger, sink, model.StageGeneratingOutput)
	o.removeWorkDir(logger, workDir)
	workDir = ""

	return Succeeded(assembler.Build(resolved, sentences, opts.ModelName))
}

func (o *Orchestrator) enter(logger *zap.Logger, sink ProgressSink, stage model.Stage) {
	logger.Info("pipeline stage started", zap.String("stage", string(stage)))
	sink.Report(stage)
}

// separate isolates vocals, falling back to the original audio on any error
func (o *Orchestrator) separate(ctx context.Context, logger *zap.Logger, audioPath string) (workDir, source string) {
	if o.engines.Separator == nil {
		logger.Warn("no vocal separator configured, using original audio")
		return "", audioPath
	}

	prefix := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	workDir, err := o.workDirs.NewWorkDir(prefix)
	if err != nil {
		logger.Warn("failed to create separation directory, using original audio", zap.Error(err))
		return "", audioPath
	}

	start := time.Now()
	vocals, err := o.engines.Separator.Separate(ctx, audioPath, workDir)
	if err != nil {
		logger.Warn("source splitting failed, using original audio file", zap.Error(err))
		return workDir, audioPath
	}
	logger.Debug("vocals separated", zap.String("path", vocals), zap.Duration("elapsed", time.Since(start)))
	return workDir, vocals
}

func (o *Orchestrator) removeWorkDir(logger *zap.Logger, dir string) {
	if dir == "" {
		return
	}
	if err := o.workDirs.RemoveWorkDir(dir); err != nil {
		logger.Warn("failed to remove separation directory", zap.String("dir", dir), zap.Error(err))
	}
}
