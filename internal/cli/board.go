package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/minefield/internal/display"
	"github.com/mcoot/minefield/internal/model"
)

const (
	hiddenGlyph = "■"
	emptyGlyph  = "·"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	tileStyles = map[display.Kind]lipgloss.Style{
		display.KindHidden:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		display.KindEmpty:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		display.KindNumber:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		display.KindFlag:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		display.KindBoom:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Reverse(true),
		display.KindMine:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		display.KindWrongFlag: lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Strikethrough(true),
	}

	statusStyles = map[model.GameStatus]lipgloss.Style{
		model.GameStatusPlaying: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		model.GameStatusWon:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		model.GameStatusLost:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

// RenderBoard draws the board with x across and y down, followed by a status line
func RenderBoard(view *model.GameView) (string, error) {
	var sb strings.Builder

	// Column headers
	sb.WriteString(headerStyle.Render("   "))
	for x := 0; x < view.Width; x++ {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%3d", x)))
	}
	sb.WriteString("\n")

	for y := 0; y < view.Height; y++ {
		sb.WriteString(headerStyle.Render(fmt.Sprintf("%3d", y)))
		for x := 0; x < view.Width; x++ {
			tv := view.Tile(model.Position{X: x, Y: y})
			if tv == nil {
				return "", fmt.Errorf("missing tile %s", model.Position{X: x, Y: y})
			}
			cell, err := renderTile(*tv)
			if err != nil {
				return "", err
			}
			sb.WriteString("  ")
			sb.WriteString(cell)
		}
		if y < view.Height-1 {
			sb.WriteString("\n")
		}
	}

	return frameStyle.Render(sb.String()) + "\n" + RenderStatus(view), nil
}

// RenderStatus returns the one-line summary shown under a board
func RenderStatus(view *model.GameView) string {
	style, ok := statusStyles[view.Status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return fmt.Sprintf("Flags left: %d  Tiles left: %d  Status: %s",
		view.FlagsLeft, view.TilesLeft, style.Render(statusText(view.Status)))
}

func renderTile(tv model.TileView) (string, error) {
	tile, err := display.ForTile(tv)
	if err != nil {
		return "", err
	}

	glyph := tile.Glyph
	if glyph == "" {
		glyph = emptyGlyph
		if tile.Kind == display.KindHidden {
			glyph = hiddenGlyph
		}
	}
	return tileStyles[tile.Kind].Render(glyph), nil
}

func statusText(status model.GameStatus) string {
	switch status {
	case model.GameStatusWon:
		return "you win!"
	case model.GameStatusLost:
		return "boom!"
	default:
		return string(status)
	}
}
