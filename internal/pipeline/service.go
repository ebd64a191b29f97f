package pipeline

import (
	"fmt"

	"github.com/h2port/h2port/internal/config"
	"github.com/h2port/h2port/internal/convert"
	"github.com/h2port/h2port/pkg/logger"
)

type Options struct {
	Rules  convert.Rules
	Apply  bool
	Target *config.Config
	Logger *logger.Logger
}

type Engine interface {
	Execute() error
}

type Service struct {
	engine Engine
}

func NewService(dialect, inputPath, outputPath string, options Options) (*Service, error) {
	var engine Engine
	switch dialect {
	case "postgres":
		engine = newPostgresEngine(inputPath, outputPath, options)
	case "sqlite":
		engine = newSQLiteEngine(inputPath, outputPath, options)
	default:
		return nil, fmt.Errorf("unsupported target dialect: %s", dialect)
	}

	return &Service{engine: engine}, nil
}

func (s *Service) Execute() error {
	return s.engine.Execute()
}
