package config

import (
	"fmt"
	"time"
	"unicode"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Yahoo       Yahoo
	Report      Report
	Web         Web
	Log         Log
	TelegramBot TelegramBot
	Schedule    Schedule
}

type Yahoo struct {
	CredentialsFile string        `envconfig:"CREDENTIALS_FILE" default:"private.json"`
	GameCode        string        `envconfig:"GAME_CODE" default:"nfl"`
	LeagueID        string        `envconfig:"LEAGUE_ID"`
	Week            int           `envconfig:"WEEK"`
	MyTeam          string        `envconfig:"MY_TEAM"`
	APIURL          string        `envconfig:"YAHOO_API_URL" default:"https://fantasysports.yahooapis.com/fantasy/v2"`
	AuthURL         string        `envconfig:"YAHOO_AUTH_URL" default:"https://api.login.yahoo.com/oauth2/request_auth"`
	TokenURL        string        `envconfig:"YAHOO_TOKEN_URL" default:"https://api.login.yahoo.com/oauth2/get_token"`
	Timeout         time.Duration `envconfig:"YAHOO_TIMEOUT" default:"10s"`
}

type Report struct {
	Path string `envconfig:"REPORT_PATH" default:"fantasy_report.html"`
}

type Web struct {
	Addr        string  `envconfig:"WEB_ADDR" default:":8080"`
	MetricsAddr string  `envconfig:"METRICS_ADDR" default:":9090"`
	RateLimit   float64 `envconfig:"WEB_RATE_LIMIT" default:"1"`
	RateBurst   int     `envconfig:"WEB_RATE_BURST" default:"5"`
}

type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type Schedule struct {
	Location string `envconfig:"SCHEDULE_TIMEZONE" default:"America/Chicago"`
	Report   string `envconfig:"REPORT_SCHEDULE"`
	Summary  string `envconfig:"SUMMARY_SCHEDULE"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate is called after command line overrides are applied.
func (c *Config) Validate() error {
	if c.Yahoo.LeagueID == "" {
		return fmt.Errorf("LEAGUE_ID must be set")
	}
	for _, r := range c.Yahoo.LeagueID {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("LEAGUE_ID must contain only digits, got %q", c.Yahoo.LeagueID)
		}
	}
	if c.Yahoo.GameCode == "" {
		return fmt.Errorf("GAME_CODE must be set")
	}
	if c.Yahoo.Week < 0 {
		return fmt.Errorf("WEEK must not be negative, got %d", c.Yahoo.Week)
	}
	if c.Web.RateLimit <= 0 || c.Web.RateBurst <= 0 {
		return fmt.Errorf("WEB_RATE_LIMIT and WEB_RATE_BURST must be positive")
	}

	for name, expr := range map[string]string{
		"REPORT_SCHEDULE":  c.Schedule.Report,
		"SUMMARY_SCHEDULE": c.Schedule.Summary,
	} {
		if expr == "" {
			continue
		}
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("%s is not a valid cron expression: %w", name, err)
		}
	}

	if c.Schedule.Summary != "" && !c.TelegramBot.Enabled() {
		return fmt.Errorf("SUMMARY_SCHEDULE requires TELEGRAM_TOKEN and CHAT_ID")
	}

	return nil
}

func (t TelegramBot) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}
