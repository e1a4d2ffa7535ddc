package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spektra/internal/player"
	"github.com/olivier-w/spektra/internal/spectral"
)

// tickInterval drives the bar evolution at roughly 60 Hz. Ticks are only
// scheduled while there is something to animate.
const tickInterval = 16 * time.Millisecond

type tickMsg time.Time

type loadedMsg struct {
	player *player.Player
	err    error
}

type playbackEndedMsg struct {
	player *player.Player
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd builds a fresh playback pipeline off the update loop.
func loadCmd(path string, slot *spectral.Slot) tea.Cmd {
	return func() tea.Msg {
		p, err := player.New(path, slot)
		return loadedMsg{player: p, err: err}
	}
}

// watchDone resolves once the given player's stream drains. The message
// carries the player so a rebuilt pipeline can ignore stale notifications.
func watchDone(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{player: p}
	}
}
