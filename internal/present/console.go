// Package present turns a loaded dashboard into console text or a static
// HTML report.
package present

import (
	"fmt"
	"io"

	"github.com/omarshaarawi/fantasydash/internal/service"
)

type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render prints the standings and scoreboard sections. Sections that
// failed to load are left out.
func (c *Console) Render(d service.Dashboard) error {
	for _, section := range []string{
		service.FormatStandings(d.Standings),
		service.FormatScoreboard(d.Scoreboard),
	} {
		if section == "" {
			continue
		}
		if _, err := fmt.Fprint(c.out, "\n"+section); err != nil {
			return fmt.Errorf("writing console output: %w", err)
		}
	}
	return nil
}
