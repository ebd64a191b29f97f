package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/h2port/h2port/internal/convert"
	"github.com/h2port/h2port/internal/database"
	"github.com/h2port/h2port/pkg/progress"
)

type postgresEngine struct {
	inputPath  string
	outputPath string
	options    Options
}

func newPostgresEngine(inputPath, outputPath string, options Options) *postgresEngine {
	return &postgresEngine{
		inputPath:  inputPath,
		outputPath: outputPath,
		options:    options,
	}
}

func (e *postgresEngine) Execute() error {
	e.options.Logger.Infof("Converting %s to PostgreSQL format...", e.inputPath)

	data, err := os.ReadFile(e.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	converter := convert.NewPostgresConverter(e.options.Rules)
	statements, unterminated := converter.Split(string(data))
	if unterminated {
		e.options.Logger.Warn("input ends with an unterminated statement; converting it anyway")
	}

	bar := progress.NewBar(int64(len(statements)), "Converting statements")
	stats := &convert.Stats{}
	converted := make([]string, 0, len(statements))
	for _, stmt := range statements {
		converted = append(converted, converter.Rewrite(stmt, stats))
		bar.Increment()
	}
	bar.Finish()

	output := strings.Join(converted, "\n")
	if err := os.WriteFile(e.outputPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	e.options.Logger.Info("Conversion complete")
	e.options.Logger.Infof("  CREATE TABLE: %d", stats.CreateTable)
	e.options.Logger.Infof("  INSERT: %d", stats.Insert)
	e.options.Logger.Infof("  CREATE INDEX: %d", stats.CreateIndex)
	e.options.Logger.Infof("  CREATE SEQUENCE: %d", stats.CreateSequence)
	e.options.Logger.Infof("  ALTER SEQUENCE: %d", stats.AlterSequence)
	e.options.Logger.Infof("  Other: %d", stats.Other)
	e.options.Logger.Infof("  Output: %s", e.outputPath)

	if e.options.Apply {
		if err := e.apply(converted); err != nil {
			return fmt.Errorf("failed to apply converted statements: %w", err)
		}
	}

	return nil
}

func (e *postgresEngine) apply(statements []string) error {
	e.options.Logger.Info("Applying converted statements to the target database...")

	conn, err := database.NewConnection(e.options.Target)
	if err != nil {
		return fmt.Errorf("target database connection: %w", err)
	}
	defer conn.Close()

	applied, err := conn.ApplyStatements(statements)
	if err != nil {
		return err
	}

	e.options.Logger.Infof("%d statements applied", applied)
	return nil
}
