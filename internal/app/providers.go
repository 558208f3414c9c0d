package app

import (
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/rroosshhaann/whisper-diarization/internal/api/server"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/handlers"
	"github.com/rroosshhaann/whisper-diarization/internal/api/v1/services"
	"github.com/rroosshhaann/whisper-diarization/internal/app/engine/demucs"
	"github.com/rroosshhaann/whisper-diarization/internal/app/engine/inference"
	"github.com/rroosshhaann/whisper-diarization/internal/app/engine/openai"
	"github.com/rroosshhaann/whisper-diarization/internal/app/pipeline"
	"github.com/rroosshhaann/whisper-diarization/internal/app/scheduler"
	"github.com/rroosshhaann/whisper-diarization/internal/app/storage"
	"github.com/rroosshhaann/whisper-diarization/internal/config"
)

// Service is the fully wired HTTP service
type Service struct {
	Scheduler *scheduler.Scheduler
	Server    *server.Server
	Inference *inference.Client
}

// NewService bundles the long-lived components
func NewService(sched *scheduler.Scheduler, srv *server.Server, client *inference.Client) *Service {
	return &Service{Scheduler: sched, Server: srv, Inference: client}
}

// PipelineSet builds the orchestrator from configuration
var PipelineSet = wire.NewSet(
	provideScratchStore,
	provideInferenceClient,
	provideEngines,
	provideOrchestrator,
	wire.Bind(new(pipeline.WorkDirs), new(*storage.ScratchStore)),
)

// ServiceSet builds the scheduler and the HTTP surface on top of PipelineSet
var ServiceSet = wire.NewSet(
	PipelineSet,
	provideMetricsRegistry,
	provideScheduler,
	provideJobService,
	handlers.NewJobHandler,
	provideServer,
	NewService,
	wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
	wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
	wire.Bind(new(scheduler.AudioStore), new(*storage.ScratchStore)),
	wire.Bind(new(scheduler.Runner), new(*pipeline.Orchestrator)),
	wire.Bind(new(services.JobScheduler), new(*scheduler.Scheduler)),
	wire.Bind(new(services.JobService), new(*services.JobServiceImpl)),
)

func provideScratchStore(cfg *config.Config) (*storage.ScratchStore, error) {
	return storage.NewScratchStore(cfg.Scheduler.UploadDir)
}

func provideInferenceClient(cfg *config.Config) *inference.Client {
	return inference.NewClient(inference.Config{
		BaseURL:       cfg.Engine.BaseURL,
		Timeout:       cfg.Engine.Timeout,
		CustomHeaders: cfg.Engine.Headers,
	})
}

// provideEngines selects the configured backends; the sidecar serves whatever is not overridden
func provideEngines(cfg *config.Config, client *inference.Client, logger *zap.Logger) (pipeline.Engines, error) {
	engines := pipeline.Engines{
		Transcriber: client,
		Aligner:     client,
		Diarizer:    client,
		Punctuator:  client,
		Separator:   client,
	}

	switch cfg.Engine.Separator {
	case config.BackendInference:
	case config.BackendDemucs:
		engines.Separator = demucs.NewSeparator(cfg.Engine.PythonBin, cfg.Engine.Device, logger.Named("demucs"))
	default:
		return pipeline.Engines{}, fmt.Errorf("unknown separator backend %q", cfg.Engine.Separator)
	}

	switch cfg.Engine.Transcriber {
	case config.BackendInference:
	case config.BackendOpenAI:
		engines.Transcriber = openai.NewTranscriberFromKey(cfg.OpenAIKey)
	default:
		return pipeline.Engines{}, fmt.Errorf("unknown transcriber backend %q", cfg.Engine.Transcriber)
	}
	return engines, nil
}

func provideOrchestrator(engines pipeline.Engines, workDirs pipeline.WorkDirs, logger *zap.Logger) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(engines, workDirs, logger.Named("pipeline"))
}

func provideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideScheduler(cfg *config.Config, store scheduler.AudioStore, runner scheduler.Runner, reg prometheus.Registerer, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(scheduler.Config{
		JobTTL:     cfg.Scheduler.JobTTL,
		Registerer: reg,
	}, store, runner, logger.Named("scheduler"))
}

func provideJobService(cfg *config.Config, sched services.JobScheduler) *services.JobServiceImpl {
	return services.NewJobService(sched, cfg.JobDefaults())
}

func provideServer(cfg *config.Config, jobHandler *handlers.JobHandler, gatherer prometheus.Gatherer, logger *zap.Logger) *server.Server {
	return server.NewServer(server.Config{
		Address:      cfg.Address(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Environment:  cfg.Server.Environment,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}, jobHandler, gatherer, logger.Named("http"))
}
