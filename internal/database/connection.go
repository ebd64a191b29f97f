package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/h2port/h2port/internal/config"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type Connection struct {
	DB     *sql.DB
	Config *config.Config
}

// NewConnection opens the target database named by the config. A SQLite
// target is created fresh: an existing file at the path is replaced, since
// the converted dump carries the full schema.
func NewConnection(cfg *config.Config) (*Connection, error) {
	var db *sql.DB
	var err error

	switch cfg.Target.Driver {
	case "postgres":
		db, err = sql.Open("postgres", cfg.GetConnectionString())
	case "sqlite":
		if cfg.Target.Path == "" {
			return nil, fmt.Errorf("sqlite target requires a path")
		}
		os.Remove(cfg.Target.Path)
		db, err = sql.Open("sqlite3", cfg.Target.Path)
	default:
		return nil, fmt.Errorf("unsupported target driver: %s", cfg.Target.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}

	return &Connection{
		DB:     db,
		Config: cfg,
	}, nil
}

func (c *Connection) Close() error {
	return c.DB.Close()
}

// ApplyStatements executes the converted statements inside one transaction
// and returns how many were applied. Any failure rolls the whole batch back.
func (c *Connection) ApplyStatements(statements []string) (int, error) {
	tx, err := c.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	applied := 0
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return applied, fmt.Errorf("failed to execute statement %d: %w", applied+1, err)
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return applied, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return applied, nil
}

// ApplyScript executes a whole converted dump in one call. Both drivers
// accept semicolon-separated scripts on an argument-free Exec.
func (c *Connection) ApplyScript(script string) error {
	if _, err := c.DB.Exec(script); err != nil {
		return fmt.Errorf("failed to execute converted dump: %w", err)
	}
	return nil
}
