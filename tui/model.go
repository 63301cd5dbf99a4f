package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-compose/compose"
	"go-compose/sequencer"
)

// Model displays playback progress for a generated song and lets the user
// stop it. It never drives the player; a cancel func is all it holds.
type Model struct {
	Song   *compose.Song
	Player *sequencer.Player

	cancel   func()
	progress sequencer.Progress
	quitting bool
	done     bool
}

// ProgressMsg carries a playhead update from the player.
type ProgressMsg sequencer.Progress

// DoneMsg signals that the whole song finished.
type DoneMsg struct{}

func NewModel(song *compose.Song, player *sequencer.Player, cancel func()) Model {
	return Model{
		Song:   song,
		Player: player,
		cancel: cancel,
	}
}

func listenForProgress(player *sequencer.Player) tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg(<-player.Updates())
	}
}

func (m Model) Init() tea.Cmd {
	return listenForProgress(m.Player)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case ProgressMsg:
		m.progress = sequencer.Progress(msg)
		return m, listenForProgress(m.Player)

	case DoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting || m.done {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	playheadStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	swing := "straight"
	if m.Song.Swing {
		swing = "swing"
	}
	header := headerStyle.Render(fmt.Sprintf("go-compose  %s %s  %3dbpm  %s  %s",
		m.Song.Key.Class, m.Song.Mode, m.Song.Tempo, swing, shortID(m.Song)))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	section := m.currentSection()
	if section != nil && m.progress.Total > 0 {
		out.WriteString(fmt.Sprintf("%s  %v\n\n", section.Name, section.Progression))
		out.WriteString(renderPlayhead(section.Grid, m.progress.Step, playheadStyle))
		out.WriteString("\n")
	} else {
		out.WriteString(dimStyle.Render("waiting for playback..."))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("q:stop"))
	out.WriteString("\n")
	return out.String()
}

func (m Model) currentSection() *compose.Section {
	for _, sec := range m.Song.Sections {
		if sec.Name == m.progress.Section {
			return sec
		}
	}
	return nil
}

func shortID(song *compose.Song) string {
	return song.ID.String()[:8]
}

// renderPlayhead draws one line per track with the playhead column marked.
func renderPlayhead(g *sequencer.Grid, playhead int, style lipgloss.Style) string {
	var out strings.Builder
	for t := sequencer.Track(0); t < sequencer.NumTracks; t++ {
		out.WriteString(fmt.Sprintf("%6s ", t))
		for i, step := range g.Steps {
			ch := "·"
			if len(step.Events[t]) > 0 {
				ch = "●"
			}
			if i == playhead {
				ch = style.Render("▶")
			}
			out.WriteString(ch)
			if (i+1)%sequencer.StepsPerBar == 0 {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}
