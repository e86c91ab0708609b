package main

import (
	"context"
	"fmt"
	"time"

	"github.com/omarshaarawi/fantasydash/internal/bot"
	"github.com/omarshaarawi/fantasydash/internal/present"
	"github.com/omarshaarawi/fantasydash/internal/scheduler"
	"github.com/omarshaarawi/fantasydash/internal/service"
	"github.com/omarshaarawi/fantasydash/internal/web"
	"github.com/spf13/cobra"
)

func newConsoleCmd(a *app) *cobra.Command {
	var withReport bool

	cmd := &cobra.Command{
		Use:   "console",
		Short: "Print standings and the weekly scoreboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info("Starting Yahoo Fantasy Football Stats Application")

			d := a.dashboard(a.terminalPrompter()).Load(cmd.Context())
			if !d.Connected() {
				return nil
			}

			if err := present.NewConsole(a.out).Render(d); err != nil {
				a.logger.Error("Could not display league data", "error", err)
			}

			if withReport {
				a.writeReport(d)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&a.week, "week", 0, "scoreboard week (overrides WEEK, default current week)")
	cmd.Flags().BoolVar(&withReport, "report", false, "also write the HTML report")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the HTML report file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.dashboard(a.terminalPrompter()).Load(cmd.Context())
			if d.Connected() {
				a.writeReport(d)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&a.week, "week", 0, "scoreboard week (overrides WEEK, default current week)")
	cmd.Flags().StringVar(&a.reportPath, "out", "", "report path (overrides REPORT_PATH)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard web page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&a.addr, "addr", "", "listen address (overrides WEB_ADDR)")
	return cmd
}

func (a *app) writeReport(d service.Dashboard) {
	if err := present.NewReport(a.cfg.Report.Path, a.logger).Write(d); err != nil {
		a.logger.Error("Could not generate HTML report", "error", err)
	}
}

func (a *app) serve(ctx context.Context) error {
	dashboard := a.dashboard(nil)

	var sendMessage func(string) error
	if a.cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(a.cfg.TelegramBot.Token, a.cfg.TelegramBot.ChatID, dashboard, a.logger)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				a.logger.Error("Error running telegram bot", "error", err)
			}
		}()
	}

	location, err := time.LoadLocation(a.cfg.Schedule.Location)
	if err != nil {
		return fmt.Errorf("loading schedule timezone: %w", err)
	}

	sched, err := scheduler.NewScheduler(scheduler.Config{
		Location: location,
		Report:   a.cfg.Schedule.Report,
		Summary:  a.cfg.Schedule.Summary,
	}, dashboard, present.NewReport(a.cfg.Report.Path, a.logger), sendMessage, a.logger)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
	}()

	server := web.NewServer(web.Config{
		Addr:        a.cfg.Web.Addr,
		MetricsAddr: a.cfg.Web.MetricsAddr,
		RateLimit:   a.cfg.Web.RateLimit,
		RateBurst:   a.cfg.Web.RateBurst,
	}, dashboard, a.logger)

	err = server.Run(ctx)
	a.logger.Info("Shutting down gracefully")
	return err
}
