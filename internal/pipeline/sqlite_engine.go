package pipeline

import (
	"fmt"
	"os"

	"github.com/h2port/h2port/internal/convert"
	"github.com/h2port/h2port/internal/database"
	"github.com/h2port/h2port/pkg/progress"
)

type sqliteEngine struct {
	inputPath  string
	outputPath string
	options    Options
}

func newSQLiteEngine(inputPath, outputPath string, options Options) *sqliteEngine {
	return &sqliteEngine{
		inputPath:  inputPath,
		outputPath: outputPath,
		options:    options,
	}
}

func (e *sqliteEngine) Execute() error {
	e.options.Logger.Infof("Converting %s to SQLite format...", e.inputPath)

	data, err := os.ReadFile(e.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	input := string(data)
	converter := convert.NewSQLiteConverter(e.options.Rules)

	bar := progress.NewBar(int64(convert.CountLines(input)), "Converting lines")
	converter.OnLine = bar.Increment

	output, stats, unterminated := converter.Convert(input)
	bar.Finish()
	if unterminated {
		e.options.Logger.Warn("input ends inside a CREATE TABLE statement; converting the partial statement anyway")
	}

	if err := os.WriteFile(e.outputPath, []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	e.options.Logger.Info("Conversion complete")
	e.options.Logger.Infof("  Total lines: %d", stats.TotalLines)
	e.options.Logger.Infof("  Converted: %d", stats.ConvertedLines)
	e.options.Logger.Infof("  Skipped: %d", stats.SkippedLines)
	e.options.Logger.Infof("  CREATE TABLE: %d", stats.CreateTable)
	e.options.Logger.Infof("  INSERT: %d", stats.Insert)
	e.options.Logger.Infof("  Output: %s", e.outputPath)

	if e.options.Apply {
		if err := e.apply(output); err != nil {
			return fmt.Errorf("failed to apply converted statements: %w", err)
		}
	}

	return nil
}

func (e *sqliteEngine) apply(script string) error {
	e.options.Logger.Info("Applying converted statements to the target database...")

	conn, err := database.NewConnection(e.options.Target)
	if err != nil {
		return fmt.Errorf("target database connection: %w", err)
	}
	defer conn.Close()

	if err := conn.ApplyScript(script); err != nil {
		return err
	}

	e.options.Logger.Infof("Converted dump applied to %s", e.options.Target.Target.Path)
	return nil
}
