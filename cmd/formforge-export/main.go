// Package main provides a one-shot CLI for exporting journey schemas.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/formforge/formforge/pkg/cmd"
	"github.com/formforge/formforge/pkg/log"
	"github.com/formforge/formforge/pkg/services"
	cli "github.com/urfave/cli/v3"
)

func main() {
	command := &cli.Command{
		Name:                  "formforge-export",
		Usage:                 "Export a journey's cleaned schema to a JSON file",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "journey",
				Aliases:  []string{"j"},
				Usage:    "Name of the journey to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Database connection URL for persistence (file:// or redis://)",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"o"},
				Usage:   "Directory to write the export file into",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: exportJourney,
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func exportJourney(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))
	logger := log.WithModule("export")

	persistence, err := cmd.NewPersistence(command.String("database-url"))
	if err != nil {
		return err
	}

	defer func() {
		if err := persistence.Close(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	journeyService := services.NewJourney(persistence, nil, logger)

	result, err := journeyService.Export(ctx, command.String("journey"), true, time.Now())
	if err != nil {
		return fmt.Errorf("failed to export journey: %w", err)
	}

	data, err := json.MarshalIndent(result.Export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	path := filepath.Join(command.String("output-dir"), result.Filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.InfoContext(ctx, "Journey exported", "journey", command.String("journey"), "path", path)

	return nil
}
