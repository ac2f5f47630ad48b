package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/platanus-dice/input"
	"github.com/lixenwraith/platanus-dice/render"
	"github.com/lixenwraith/platanus-dice/score"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#ffdd00")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffcc"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffff00"))

	codeStyle = lipgloss.NewStyle().
			Bold(true).
			Width(10).
			Foreground(lipgloss.Color("#ff00ff"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#777777"))
)

// formatScores renders the leaderboard panel
func formatScores(t score.Table) string {
	lines := []string{titleStyle.Render(render.BoardTitle), ""}
	if len(t) == 0 {
		lines = append(lines, subtleStyle.Render("(vacía)"))
	}
	for i, e := range t {
		lines = append(lines, rowStyle.Render(render.LeaderboardLine(i+1, e)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// formatKeys renders one line per control code
func formatKeys(kt input.KeyTable) string {
	lines := []string{titleStyle.Render("CONTROLES"), ""}
	for _, c := range input.AllCodes() {
		keys := kt[c]
		shown := make([]string, len(keys))
		for i, k := range keys {
			if k == " " {
				k = "space"
			}
			shown[i] = k
		}
		value := subtleStyle.Render("-")
		if len(shown) > 0 {
			value = strings.Join(shown, ", ")
		}
		lines = append(lines, fmt.Sprintf("%s %s", codeStyle.Render(c.String()), value))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
