package main

import (
	"io"
	"log/slog"

	"github.com/omarshaarawi/fantasydash/internal/api/fantasy"
	"github.com/omarshaarawi/fantasydash/internal/auth"
	"github.com/omarshaarawi/fantasydash/internal/config"
	"github.com/omarshaarawi/fantasydash/internal/observability"
	"github.com/omarshaarawi/fantasydash/internal/service"
	"github.com/spf13/cobra"
)

type app struct {
	in  io.Reader
	out io.Writer

	cfg    *config.Config
	logger *slog.Logger

	league      string
	game        string
	credentials string
	week        int
	reportPath  string
	addr        string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fantasydash",
		Short:         "Yahoo Fantasy Football league standings and scoreboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.league, "league", "", "Yahoo league id (overrides LEAGUE_ID)")
	flags.StringVar(&a.game, "game", "", "Yahoo game code (overrides GAME_CODE)")
	flags.StringVar(&a.credentials, "credentials", "", "OAuth credential file (overrides CREDENTIALS_FILE)")

	root.AddCommand(newConsoleCmd(a), newReportCmd(a), newServeCmd(a))
	return root
}

// setup loads the environment config, applies any flags the user set and
// validates the result.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("league") {
		cfg.Yahoo.LeagueID = a.league
	}
	if flags.Changed("game") {
		cfg.Yahoo.GameCode = a.game
	}
	if flags.Changed("credentials") {
		cfg.Yahoo.CredentialsFile = a.credentials
	}
	if flags.Changed("week") {
		cfg.Yahoo.Week = a.week
	}
	if flags.Changed("out") {
		cfg.Report.Path = a.reportPath
	}
	if flags.Changed("addr") {
		cfg.Web.Addr = a.addr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = observability.InitLogger(cfg.Log.Level, cfg.Log.Format)
	return nil
}

// dashboard wires the pipeline. A nil prompter disables interactive login.
func (a *app) dashboard(prompter auth.Prompter) *service.DashboardService {
	gateway := auth.NewGateway(auth.GatewayConfig{
		CredentialsFile: a.cfg.Yahoo.CredentialsFile,
		AuthURL:         a.cfg.Yahoo.AuthURL,
		TokenURL:        a.cfg.Yahoo.TokenURL,
		Timeout:         a.cfg.Yahoo.Timeout,
		Prompter:        prompter,
		Logger:          a.logger,
	})
	connector := fantasy.NewConnector(a.cfg.Yahoo.APIURL, a.logger)

	return service.NewDashboardService(gateway, connector, service.Options{
		GameCode: a.cfg.Yahoo.GameCode,
		LeagueID: a.cfg.Yahoo.LeagueID,
		Week:     a.cfg.Yahoo.Week,
		MyTeam:   a.cfg.Yahoo.MyTeam,
	}, a.logger)
}

func (a *app) terminalPrompter() auth.Prompter {
	return auth.TerminalPrompter{In: a.in, Out: a.out}
}
