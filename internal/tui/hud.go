package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/player"
)

// DoomColor picks the HUD colour for a doom level: white, then yellow from
// 25, orange from 50 and red from 75.
func DoomColor(doom int) lipgloss.Color {
	switch {
	case doom >= 75:
		return lipgloss.Color("#FF0000")
	case doom >= 50:
		return lipgloss.Color("#FF8000")
	case doom >= 25:
		return lipgloss.Color("#FFFF00")
	}
	return lipgloss.Color("#FFFFFF")
}

// HUDLines renders the stat block.
func HUDLines(s *player.Stats) string {
	doom := s.Get(models.StatDoom)
	return fmt.Sprintf("STAMINA: %d/%d\nREASON: %d/%d\n%s",
		s.Get(models.StatStamina), s.Max(models.StatStamina),
		s.Get(models.StatReason), s.Max(models.StatReason),
		lipgloss.NewStyle().Foreground(DoomColor(doom)).Render(fmt.Sprintf("DOOM: %d/%d", doom, player.DoomMax)),
	)
}

func TurnLine(turn int) string {
	return fmt.Sprintf("TURN: %d", turn)
}

func LocationLine(name string) string {
	if name == "" {
		name = "-"
	}
	return "Location: " + name
}
