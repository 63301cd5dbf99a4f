package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-compose/compose"
	"go-compose/sequencer"
)

// RenderSong returns a static dump of a generated song, one grid per
// section, for dry runs without a MIDI device.
func RenderSong(song *compose.Song) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	swing := "straight"
	if song.Swing {
		swing = "swing"
	}

	var out strings.Builder
	out.WriteString(titleStyle.Render(fmt.Sprintf("song %s  %s %s  %dbpm  %s",
		song.ID, song.Key.Class, song.Mode, song.Tempo, swing)))
	out.WriteString("\n")

	for _, sec := range song.Sections {
		out.WriteString("\n")
		out.WriteString(sectionStyle.Render(fmt.Sprintf("%s x%d  %v", sec.Name, sec.Repeats, sec.Progression)))
		out.WriteString("\n")
		out.WriteString(renderGrid(sec.Grid))
	}
	return out.String()
}

func renderGrid(g *sequencer.Grid) string {
	var out strings.Builder
	for t := sequencer.Track(0); t < sequencer.NumTracks; t++ {
		out.WriteString(fmt.Sprintf("%6s ", t))
		for i, step := range g.Steps {
			if len(step.Events[t]) > 0 {
				out.WriteString("●")
			} else {
				out.WriteString("·")
			}
			if (i+1)%sequencer.StepsPerBar == 0 {
				out.WriteString(" ")
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}
