package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/pronounce/api"
	"github.com/kbukum/pronounce/assessment"
	"github.com/kbukum/pronounce/audio"
	"github.com/kbukum/pronounce/component"
	"github.com/kbukum/pronounce/features"
	"github.com/kbukum/pronounce/logger"
	"github.com/kbukum/pronounce/model"
	"github.com/kbukum/pronounce/observability"
	"github.com/kbukum/pronounce/reference"
	"github.com/kbukum/pronounce/server"
	"github.com/kbukum/pronounce/storage"
	"github.com/kbukum/pronounce/transcription"
	"github.com/kbukum/pronounce/vocabulary"

	// Backends selected by configuration.
	_ "github.com/kbukum/pronounce/storage/local"
	_ "github.com/kbukum/pronounce/storage/s3"
	_ "github.com/kbukum/pronounce/transcription/whisper"
)

// DefaultGracefulTimeout bounds shutdown.
const DefaultGracefulTimeout = 15 * time.Second

// App is the wired pronunciation service with uniform lifecycle management.
//
//	cfg, _ := app.Load()
//	a, _ := app.New(ctx, cfg)
//	a.Run(ctx)
type App struct {
	Name    string
	Version string
	Cfg     *Config

	Components *component.Registry
	Logger     *logger.Logger
	Metrics    *observability.Metrics

	Storage     storage.Storage
	Models      *model.Store
	References  *reference.Library
	Vocabulary  *vocabulary.Catalog
	Extractor   *features.Extractor
	Decoders    *audio.Registry
	Transcriber *transcription.Transcriber
	Assessor    *assessment.Orchestrator
	// Server is nil when built WithoutServer.
	Server *server.Server

	gracefulTimeout time.Duration
	summary         *Summary
	summaryOut      io.Writer

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New applies defaults, validates cfg and wires every collaborator. Nothing
// is started until Run or RunTask.
func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	o := resolveOptions(opts)

	a := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: DefaultGracefulTimeout,
		summary:         NewSummary(cfg.Name, cfg.Version),
		summaryOut:      os.Stdout,
	}
	if o.gracefulTimeout != nil {
		a.gracefulTimeout = *o.gracefulTimeout
	}
	if o.summary != nil {
		a.summaryOut = o.summary
	}
	if o.logger != nil {
		a.Logger = o.logger
	} else {
		a.Logger = logger.New(&cfg.Logging, cfg.Name)
		logger.SetGlobalLogger(a.Logger)
	}
	a.Components = component.NewRegistry(a.Logger)

	shutdownTelemetry, err := observability.Setup(ctx, cfg.Observability, cfg.Name, cfg.Version, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	a.OnStop(shutdownTelemetry)
	if a.Metrics, err = observability.NewMetrics(observability.Meter(cfg.Name)); err != nil {
		return nil, fmt.Errorf("observability metrics: %w", err)
	}

	if err := a.wirePipeline(ctx); err != nil {
		return nil, err
	}
	if err := a.Components.Register(a.Models); err != nil {
		return nil, err
	}
	if err := a.Components.Register(a.Transcriber); err != nil {
		return nil, err
	}
	if !o.withoutServer {
		a.wireServer()
		if err := a.Components.Register(a.Server); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (a *App) wirePipeline(ctx context.Context) error {
	cfg := a.Cfg
	var err error

	if a.Storage, err = storage.New(ctx, cfg.Storage, a.Logger); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	a.Models = model.NewStore(a.Storage, cfg.Model.Path, a.Logger)

	if a.Extractor, err = features.NewExtractor(cfg.Features); err != nil {
		return fmt.Errorf("features: %w", err)
	}
	a.References = reference.New(a.Storage, a.Extractor, a.Logger)

	if a.Vocabulary, err = vocabulary.Load(cfg.Vocabulary.Path); err != nil {
		return err
	}

	backend, err := transcription.New(cfg.Transcription)
	if err != nil {
		return fmt.Errorf("transcription: %w", err)
	}
	a.Transcriber = transcription.NewTranscriber(backend, cfg.Transcription, a.Logger, a.Metrics)

	a.Decoders = audio.NewRegistry(
		audio.NewWAVDecoder(cfg.Audio.ChunkSize),
		audio.NewFFmpegDecoder(cfg.Audio.FFmpeg, nil),
	)
	a.Assessor, err = assessment.New(assessment.Options{
		Decoders:      a.Decoders,
		Extractor:     a.Extractor,
		Transcriber:   a.Transcriber,
		Models:        a.Models,
		References:    a.References,
		Vocabulary:    a.Vocabulary,
		Scoring:       cfg.Scoring,
		DecodeTimeout: cfg.Audio.DecodeTimeout,
		Metrics:       a.Metrics,
		Logger:        a.Logger,
	})
	if err != nil {
		return fmt.Errorf("assessment: %w", err)
	}
	a.summary.SetScoring(a.Assessor.Strategy(), a.Assessor.Policy().Name)
	return nil
}

func (a *App) wireServer() {
	a.Server = server.New(a.Cfg.Server, a.Logger)
	api.New(api.Options{
		Assessor:    a.Assessor,
		Transcriber: a.Transcriber,
		Vocabulary:  a.Vocabulary,
		RateLimit:   a.Cfg.Server.RateLimit,
		Logger:      a.Logger,
	}).Register(a.Server.Engine())
	a.Server.RegisterDefaultEndpoints(a.Name, a.Components.HealthAll)
	a.summary.TrackRoutes(a.Server.Engine().Routes())
}

// ReadyCheck returns an error naming every unhealthy component. Degraded
// components do not fail it.
func (a *App) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusUnhealthy {
			detail := h.Name
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts the service and blocks until SIGINT, SIGTERM or ctx
// cancellation, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}
	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

// RunTask starts the components, runs task and shuts down when it returns.
// A signal cancels the task's context.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)
	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		_ = a.stop()
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.summary.SetStartupDuration(time.Since(start))
	a.summary.Write(ctx, a.summaryOut, a.Components)
	return nil
}

// WaitForSignal blocks until an interrupt or term signal, or until ctx is
// canceled.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown stops the application. Use it when managing the lifecycle
// yourself.
func (a *App) Shutdown(context.Context) error {
	return a.stop()
}

// stop stops components in reverse order, then runs the stop hooks, all
// within the graceful timeout.
func (a *App) stop() error {
	a.Logger.Info("Shutting down application", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		shutdownErr = err
	}
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, err.Error()))
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
