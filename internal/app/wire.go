//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
	"github.com/rroosshhaann/whisper-diarization/internal/config"
)

// InitializeService wires the scheduler, pipeline and HTTP server
func InitializeService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	wire.Build(ServiceSet)
	return &Service{}, nil
}

// InitializeOrchestrator wires a standalone pipeline for one-shot runs
func InitializeOrchestrator(cfg *config.Config, logger *zap.Logger) (*pipeline.Orchestrator, error) {
	wire.Build(PipelineSet)
	return &pipeline.Orchestrator{}, nil
}
