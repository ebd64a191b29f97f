package app

import (
	"fmt"
	"os"

	"github.com/h2port/h2port/internal/config"
	"github.com/h2port/h2port/internal/convert"
	"github.com/h2port/h2port/internal/pipeline"
	"github.com/h2port/h2port/pkg/logger"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Convert runs one conversion end to end: input check, optional config,
// pipeline dispatch, and the final log line.
func (s *Service) Convert(dialect, inputPath, outputPath, configPath string, apply, verboseFlag bool) error {
	log := logger.NewLogger(verboseFlag)

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}
		cfg = loaded
	}

	if apply {
		if configPath == "" {
			return fmt.Errorf("--apply requires --config with a target section")
		}
		if cfg.Target.Driver != dialect {
			return fmt.Errorf("target driver %q does not match dialect %q", cfg.Target.Driver, dialect)
		}
	}

	opts := pipeline.Options{
		Rules: convert.Rules{
			TypeOverrides: cfg.Conversion.TypeOverrides,
			SkipPrefixes:  cfg.Conversion.SkipPrefixes,
		},
		Apply:  apply,
		Target: cfg,
		Logger: log,
	}

	service, err := pipeline.NewService(dialect, inputPath, outputPath, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize conversion service: %w", err)
	}

	if err := service.Execute(); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	log.Logger.Info("Conversion completed successfully!")
	return nil
}
