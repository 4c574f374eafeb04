// Package components renders the HTML fragments served by the web UI.
// The views are templ components; run `templ generate` after editing a
// .templ file.
package components

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/minefield/internal/display"
	"github.com/mcoot/minefield/internal/model"
)

// PageData holds the data every full page needs
type PageData struct {
	Title string
	Flash string
}

// HomeData is the data for the landing page
type HomeData struct {
	Games         []model.GameSummary
	DefaultWidth  int
	DefaultHeight int
}

// TileID is the DOM id of the cell for a tile
func TileID(x, y int) string {
	return fmt.Sprintf("tile-%d-%d", x, y)
}

// Cell renders a single tile. With oob set the cell replaces its counterpart
// already on the page.
func Cell(id model.GameID, tile model.TileView, oob bool) templ.Component {
	d, err := display.ForTile(tile)
	if err != nil {
		return templ.ComponentFunc(func(context.Context, io.Writer) error {
			return err
		})
	}
	return cell(id, tile, d, oob)
}

type coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func coordsOf(t model.TileView) coords {
	return coords{X: t.X, Y: t.Y}
}

// gamePath builds the URL path of a game resource
func gamePath(id model.GameID, parts ...string) string {
	p := "/games/" + url.PathEscape(string(id))
	if len(parts) > 0 {
		p += "/" + strings.Join(parts, "/")
	}
	return p
}

func statusText(s model.GameStatus) string {
	switch s {
	case model.GameStatusWon:
		return "You win!"
	case model.GameStatusLost:
		return "Boom!"
	default:
		return "Playing"
	}
}

func summaryText(g model.GameSummary) string {
	return fmt.Sprintf("%dx%d, %d mines, %s", g.Width, g.Height, g.Mines, statusText(g.Status))
}

// Render renders a component to a string
func Render(ctx context.Context, c templ.Component) (string, error) {
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + templ.EscapeString(id) + `" hx-swap-oob="true">` + html + `</div>`
}
