package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/fantasydash/internal/service"
)

type Loader interface {
	Load(ctx context.Context) service.Dashboard
}

type ReportWriter interface {
	Write(d service.Dashboard) error
}

type Config struct {
	Location *time.Location
	// Report and Summary are standard five-field cron expressions. An
	// empty expression disables the job.
	Report  string
	Summary string
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         Config
	loader      Loader
	report      ReportWriter
	sendMessage func(string) error
	logger      *slog.Logger
}

func NewScheduler(cfg Config, loader Loader, report ReportWriter, sendMessage func(string) error, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(cfg.Location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		loader:      loader,
		report:      report,
		sendMessage: sendMessage,
		logger:      logger,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cfg.Report != "" {
		_, err := s.s.NewJob(
			gocron.CronJob(s.cfg.Report, false),
			gocron.NewTask(s.writeReport),
			gocron.WithName("report"),
		)
		if err != nil {
			return fmt.Errorf("failed to create report job: %w", err)
		}
	}

	if s.cfg.Summary != "" {
		if s.sendMessage == nil {
			return fmt.Errorf("summary job needs a message sender")
		}
		_, err := s.s.NewJob(
			gocron.CronJob(s.cfg.Summary, false),
			gocron.NewTask(s.sendSummary),
			gocron.WithName("summary"),
		)
		if err != nil {
			return fmt.Errorf("failed to create summary job: %w", err)
		}
	}

	s.s.Start()
	s.logger.Info("Scheduler started", "jobs", len(s.s.Jobs()))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) writeReport() {
	d := s.loader.Load(context.Background())
	if !d.Connected() {
		s.logger.Error("Skipping scheduled report", "error", d.Err)
		return
	}
	if err := s.report.Write(d); err != nil {
		s.logger.Error("Failed to write scheduled report", "error", err)
	}
}

func (s *Scheduler) sendSummary() {
	d := s.loader.Load(context.Background())
	if err := s.sendMessage(service.Summary(d)); err != nil {
		s.logger.Error("Failed to send summary", "error", err)
	}
}
