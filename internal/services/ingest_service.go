package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"ecomingest/internal/config"
	"ecomingest/internal/ingest"
	"ecomingest/internal/models"
	"ecomingest/internal/repositories"
	"ecomingest/internal/source"
	"ecomingest/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// EventPublisher is satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Step pairs a source document with the loader for its table.
type Step struct {
	Path   string
	Loader Loader
}

// TableSummary describes what happened to one table during a run.
type TableSummary struct {
	Table      string `json:"table"`
	Source     string `json:"source"`
	Loaded     int    `json:"loaded"`
	Inserted   int64  `json:"inserted"`
	Skipped    bool   `json:"skipped"`
	SkipReason string `json:"skip_reason,omitempty"`
}

// Summary is the outcome of one run.
type Summary struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Tables     []TableSummary `json:"tables"`
	Counts     []TableCount   `json:"counts,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// IngestService runs the load steps in order and verifies the result.
type IngestService struct {
	steps     []Step
	verifier  *Verifier
	publisher EventPublisher // optional
	out       io.Writer
	logger    zerolog.Logger
}

// NewIngestService creates a new IngestService. Steps run in the order given.
func NewIngestService(steps []Step, verifier *Verifier, publisher EventPublisher, out io.Writer, logger zerolog.Logger) *IngestService {
	return &IngestService{
		steps:     steps,
		verifier:  verifier,
		publisher: publisher,
		out:       out,
		logger:    logger,
	}
}

// NewDefaultIngestService wires the five GORM-backed loaders against db in
// foreign-key-safe order: users, products, orders, order_items, payments.
func NewDefaultIngestService(cfg config.Config, db *gorm.DB, publisher EventPublisher, out io.Writer, logger zerolog.Logger) *IngestService {
	validate := NewValidator()
	steps := []Step{
		{Path: cfg.SourcePath(cfg.Sources.Users), Loader: NewUserLoader(repositories.NewGORMUserRepository(db), validate)},
		{Path: cfg.SourcePath(cfg.Sources.Products), Loader: NewProductLoader(repositories.NewGORMProductRepository(db), validate)},
		{Path: cfg.SourcePath(cfg.Sources.Orders), Loader: NewOrderLoader(repositories.NewGORMOrderRepository(db), validate)},
		{Path: cfg.SourcePath(cfg.Sources.OrderItems), Loader: NewOrderItemLoader(repositories.NewGORMOrderItemRepository(db), validate)},
		{Path: cfg.SourcePath(cfg.Sources.Payments), Loader: NewPaymentLoader(repositories.NewGORMPaymentRepository(db), validate)},
	}
	verifier := NewVerifier(repositories.NewGORMStatsRepository(db), models.TableNames())
	return NewIngestService(steps, verifier, publisher, out, logger)
}

// Run loads every step, then verifies row counts.
//
// A missing or malformed source document skips its table and the run goes on.
// Any other error stops the run: the failing table's transaction has already
// been rolled back, tables loaded before it stay committed, and the error is
// returned together with the partial summary.
func (s *IngestService) Run() (*Summary, error) {
	summary := &Summary{RunID: uuid.New().String(), StartedAt: time.Now()}
	logger := s.logger.With().Str("run_id", summary.RunID).Logger()

	fmt.Fprintln(s.out, "\nLoading and inserting data...")
	fmt.Fprintln(s.out, separator)

	for _, step := range s.steps {
		table := step.Loader.Table()
		ts := TableSummary{Table: table, Source: step.Path}

		records, err := source.Load(step.Path)
		if err != nil {
			if !ingest.IsSkippable(err) {
				summary.Tables = append(summary.Tables, ts)
				return s.fail(summary, logger, err)
			}
			fmt.Fprintf(s.out, "Error: %v\n", err)
			logger.Warn().Err(err).Str("table", table).Msg("skipping table")
			ts.Skipped, ts.SkipReason = true, err.Error()
			summary.Tables = append(summary.Tables, ts)
			continue
		}
		ts.Loaded = len(records)
		fmt.Fprintf(s.out, "Loaded %d records from %s\n", len(records), step.Path)

		if len(records) == 0 {
			summary.Tables = append(summary.Tables, ts)
			continue
		}

		inserted, err := step.Loader.Load(records)
		if err != nil {
			summary.Tables = append(summary.Tables, ts)
			logger.Error().Err(err).Str("table", table).Msg("table load rolled back")
			return s.fail(summary, logger, err)
		}
		ts.Inserted = inserted
		summary.Tables = append(summary.Tables, ts)
		fmt.Fprintf(s.out, "Inserted %d %s\n", inserted, strings.ReplaceAll(table, "_", " "))
		logger.Info().Str("table", table).Int64("rows", inserted).Msg("table loaded")
	}

	counts, err := s.verifier.Verify()
	if err != nil {
		return s.fail(summary, logger, err)
	}
	summary.Counts = counts
	WriteReport(s.out, counts)

	fmt.Fprintf(s.out, "\n%s\n", banner)
	fmt.Fprintln(s.out, "Data ingestion completed successfully!")
	fmt.Fprintln(s.out, banner)

	summary.FinishedAt = time.Now()
	s.publish(logger, "ingest.completed", summary)
	return summary, nil
}

func (s *IngestService) fail(summary *Summary, logger zerolog.Logger, err error) (*Summary, error) {
	summary.FinishedAt = time.Now()
	summary.Error = err.Error()
	fmt.Fprintf(s.out, "\nError during data ingestion: %v\n", err)
	logger.Error().Err(err).Msg("ingestion aborted")
	s.publish(logger, "ingest.failed", summary)
	return summary, err
}

func (s *IngestService) publish(logger zerolog.Logger, event string, summary *Summary) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(struct {
		Event string `json:"event"`
		*Summary
	}{Event: event, Summary: summary})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to marshal ingest event")
		return
	}
	if err := s.publisher.Publish("", rabbitmq.IngestQueue, body); err != nil {
		logger.Warn().Err(err).Str("event", event).Msg("failed to publish ingest event")
		return
	}
	logger.Info().Str("event", event).Msg("published ingest event")
}
