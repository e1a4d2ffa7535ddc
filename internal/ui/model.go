// Package ui implements the Bubbletea TUI: playback controls and the
// tick-driven spectrum display.
package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spektra/internal/player"
	"github.com/olivier-w/spektra/internal/spectral"
	"github.com/olivier-w/spektra/internal/util"
)

// Model owns the visualizer state: the playback pipeline, the bar engine,
// and the peak markers. The pipeline is rebuilt from scratch on stop and
// when the stream drains; the engine and markers persist so the bars decay
// smoothly across rebuilds.
type Model struct {
	path   string
	meta   player.Metadata
	slot   *spectral.Slot
	engine *spectral.Engine
	peaks  *peakField
	player *player.Player

	elapsed  time.Duration
	duration time.Duration
	volume   float64
	width    int
	height   int
	ticking  bool
	quitting bool
	err      error

	// barCache holds the last rendered bar frame; cleared whenever a tick
	// changes heights or the window resizes.
	barCache string
}

// New creates a Model for the given file. The pipeline is built by Init.
func New(path string, meta player.Metadata) Model {
	slot := &spectral.Slot{}
	return Model{
		path:   path,
		meta:   meta,
		slot:   slot,
		engine: spectral.NewEngine(slot),
		peaks:  newPeakField(int(time.Second / tickInterval)),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(m.path, m.slot),
		tea.SetWindowTitle(windowTitle(m.meta.Title, true)),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.player = msg.player
		m.err = nil
		m.duration = msg.player.Duration()
		m.volume = msg.player.Volume()
		return m, watchDone(msg.player)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		changed := m.engine.Tick()
		if m.peaks.step(m.engine.Bars()) {
			changed = true
		}
		if changed {
			m.refreshBars()
		}
		if m.player != nil {
			m.elapsed = m.player.Position()
			m.volume = m.player.Volume()
		}
		if m.engine.State() != spectral.Settled || !m.peaks.settled() {
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil

	case playbackEndedMsg:
		// A torn-down pipeline reports too; only the live one counts.
		if msg.player != m.player {
			return m, nil
		}
		m.player.Close()
		m.player = nil
		m.elapsed = m.duration
		m.engine.SetPhase(spectral.Stopped)
		return m, tea.Batch(loadCmd(m.path, m.slot), m.ensureTick())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshBars()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		if m.player != nil {
			m.player.Close()
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}

	switch msg.String() {
	case " ":
		if m.player == nil {
			if m.err != nil {
				// Last load failed; give it another go.
				m.err = nil
				return m, loadCmd(m.path, m.slot)
			}
			return m, nil
		}
		if m.player.Paused() {
			m.player.Play()
			m.engine.SetPhase(spectral.Playing)
			return m, tea.Batch(m.ensureTick(), tea.SetWindowTitle(windowTitle(m.meta.Title, false)))
		}
		m.player.Pause()
		m.engine.SetPhase(spectral.Paused)
		return m, tea.Batch(m.ensureTick(), tea.SetWindowTitle(windowTitle(m.meta.Title, true)))

	case "s":
		if m.player == nil {
			return m, nil
		}
		m.player.Close()
		m.player = nil
		m.elapsed = 0
		m.engine.SetPhase(spectral.Stopped)
		return m, tea.Batch(loadCmd(m.path, m.slot), m.ensureTick(),
			tea.SetWindowTitle(windowTitle(m.meta.Title, true)))

	case "left", "h":
		if m.player != nil {
			m.player.Seek(-5 * time.Second)
			m.elapsed = m.player.Position()
		}
	case "right", "l":
		if m.player != nil {
			m.player.Seek(5 * time.Second)
			m.elapsed = m.player.Position()
		}
	case "up", "k":
		if m.player != nil {
			m.player.AdjustVolume(0.05)
			m.volume = m.player.Volume()
		}
	case "down", "j":
		if m.player != nil {
			m.player.AdjustVolume(-0.05)
			m.volume = m.player.Volume()
		}
	}
	return m, nil
}

// ensureTick arms the tick loop if it is not already running.
func (m *Model) ensureTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m *Model) barAreaHeight() int {
	h := m.height - 9
	if h < 3 {
		h = 3
	}
	return h
}

// refreshBars re-renders the cached bar frame for the current sizes.
func (m *Model) refreshBars() {
	if m.width == 0 {
		m.barCache = ""
		return
	}
	m.barCache = renderBars(m.engine.Bars(), m.peaks.pos, m.width, m.barAreaHeight())
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	header := headerStyle.Render("spektra")
	title := titleStyle.Render(m.meta.Title)

	subtitle := ""
	switch {
	case m.meta.Artist != "" && m.meta.Album != "":
		subtitle = artistStyle.Render(fmt.Sprintf("%s - %s", m.meta.Artist, m.meta.Album))
	case m.meta.Artist != "":
		subtitle = artistStyle.Render(m.meta.Artist)
	case m.meta.Album != "":
		subtitle = artistStyle.Render(m.meta.Album)
	}

	elapsedStr := timeStyle.Render(util.FormatDuration(m.elapsed))
	durationStr := timeStyle.Render(util.FormatDuration(m.duration))
	barWidth := w - len(util.FormatDuration(m.elapsed)) - len(util.FormatDuration(m.duration)) - 6
	progress := renderProgressBar(m.elapsed.Seconds(), m.duration.Seconds(), barWidth)
	progressLine := fmt.Sprintf("%s %s %s", elapsedStr, progress, durationStr)

	statusIcon, statusText := "■", "stopped"
	switch {
	case m.player != nil && !m.player.Paused():
		statusIcon, statusText = "▶", "playing"
	case m.player != nil && m.elapsed > 0:
		statusIcon, statusText = "❚❚", "paused"
	}
	statusLine := statusStyle.Render(fmt.Sprintf("%s  %s", statusIcon, statusText)) +
		"   " + statusStyle.Render(renderVolumePercent(m.volume))

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "  " + title + "\n"
	if subtitle != "" {
		lines += "  " + subtitle + "\n"
	}
	lines += "\n"
	lines += m.barCache + "\n"
	lines += "\n"
	lines += "  " + progressLine + "\n"
	lines += "  " + statusLine + "\n"
	if m.err != nil {
		lines += "  " + errorStyle.Render(fmt.Sprintf("error: %v (space retries)", m.err)) + "\n"
	}
	lines += "  " + helpStyle.Render(helpText()) + "\n"

	return lines
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " - spektra"
	}
	return "▶ " + title + " - spektra"
}
