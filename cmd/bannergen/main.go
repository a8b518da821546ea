package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/snappy-loop/bannergen/internal/config"
	"github.com/snappy-loop/bannergen/internal/llm"
	"github.com/snappy-loop/bannergen/internal/output"
	"github.com/snappy-loop/bannergen/internal/run"
	"github.com/snappy-loop/bannergen/internal/storage"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := config.LoadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		log.Error().Err(err).Msg("Failed to load env file")
		os.Exit(1)
	}

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Correlate all stage logs of this invocation.
	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()

	log.Info().Msg("Starting bannergen")

	if err := cfg.Validate(); err != nil {
		reportFailure(&run.StageError{Stage: run.StageInit, Err: err})
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelImage, cfg.GeminiAPIEndpoint)
	if err != nil {
		reportFailure(&run.StageError{Stage: run.StageInit, Err: err})
	}
	defer client.Close()

	var mirror run.Mirror
	if cfg.S3Enabled() {
		s3Client, err := storage.NewClient(cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3UseSSL, cfg.S3PublicURL)
		if err != nil {
			reportFailure(&run.StageError{Stage: run.StageInit, Err: err})
		}
		mirror = s3Client
	}

	runner := &run.Runner{
		Generator: client,
		Store:     output.NewStore(cfg.OutputDir),
		Mirror:    mirror,
		In:        os.Stdin,
		Out:       os.Stdout,
	}

	res, err := runner.Run(ctx)
	if err != nil {
		reportFailure(err)
	}

	log.Info().
		Str("filename", res.Filename).
		Int("width", res.Width).
		Int("height", res.Height).
		Msg("Banner generation complete")
}

// reportFailure prints a stage-specific message, logs the error and exits
// non-zero. Every failure is terminal; nothing is retried.
func reportFailure(err error) {
	stage := run.StageInit
	var stageErr *run.StageError
	if errors.As(err, &stageErr) {
		stage = stageErr.Stage
	}

	log.Error().Err(err).Str("stage", string(stage)).Msg("Banner generation failed")
	fmt.Fprintf(os.Stderr, "Error (%s): %v\n", stage, err)
	os.Exit(1)
}
