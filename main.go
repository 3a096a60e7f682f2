package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"ecomingest/internal/config"
	"ecomingest/internal/database"
	"ecomingest/internal/logging"
	"ecomingest/internal/services"
	"ecomingest/pkg/rabbitmq"
)

func main() {
	os.Exit(run(viper.GetViper(), os.Stdout, os.Stderr))
}

// run performs one ingestion and returns the process exit code.
// Progress goes to stdout, diagnostics to stderr.
func run(v *viper.Viper, stdout, stderr io.Writer) int {
	// --- Configuration ---
	cfg := config.Load(v)
	logger := logging.New(cfg.LogLevel, stderr)

	fmt.Fprintln(stdout, banner)
	fmt.Fprintln(stdout, "E-commerce Data Ingestion")
	fmt.Fprintln(stdout, banner)
	fmt.Fprintln(stdout)

	// --- Optional event publishing ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn().Err(err).Msg("RabbitMQ unavailable, ingest events will not be published")
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Store ---
	db, err := database.Recreate(cfg, stdout, logger)
	if err != nil {
		fmt.Fprintf(stdout, "\nError during data ingestion: %v\n", err)
		logger.Error().Err(err).Msg("failed to initialize store")
		return 1
	}
	defer closeStore(db, stdout, logger)

	// --- Ingest ---
	service := services.NewDefaultIngestService(cfg, db, publisher, stdout, logger)
	if _, err := service.Run(); err != nil {
		return 1
	}
	return 0
}

func closeStore(db *gorm.DB, stdout io.Writer, logger zerolog.Logger) {
	if err := database.Close(db); err != nil {
		logger.Error().Err(err).Msg("failed to close database")
		return
	}
	fmt.Fprintln(stdout, "\nDatabase connection closed.")
}

var banner = strings.Repeat("=", 50)
