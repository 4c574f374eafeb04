package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(format, os.Stdout)
}

// NewOutputTo creates an Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) error {
	if o.format == "json" {
		return o.printJSON(data)
	}
	return o.printText(data)
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) printText(data any) error {
	switch v := data.(type) {
	case *model.GameView:
		return o.printGame(v)
	case response.CreateGameResponse:
		return o.printCreated(v)
	case response.MoveResponse:
		return o.printMove(v)
	case response.GameList:
		return o.printGameList(v)
	case response.HintResponse:
		fmt.Fprintf(o.w, "%s suggests: %s %s\n", v.Strategy, v.Move.Kind, v.Move.Position)
		return nil
	case response.AutoplayResponse:
		return o.printAutoplay(v)
	case HealthResult:
		o.printHealthResult(v)
		return nil
	default:
		// Fallback to JSON for unknown types
		return o.printJSON(data)
	}
}

func (o *Output) printGame(v *model.GameView) error {
	fmt.Fprintf(o.w, "Game: %s (%dx%d, %d mines)\n", v.ID, v.Width, v.Height, v.Mines)
	board, err := RenderBoard(v)
	if err != nil {
		return err
	}
	fmt.Fprintln(o.w, board)
	return nil
}

func (o *Output) printCreated(c response.CreateGameResponse) error {
	if err := o.printGame(c.Game); err != nil {
		return err
	}
	fmt.Fprintf(o.w, "Token: %s\n", c.Token)
	return nil
}

func (o *Output) printMove(m response.MoveResponse) error {
	fmt.Fprintf(o.w, "Changed %d tiles in %d waves\n", len(m.Changed), m.Waves)
	return o.printGame(m.Game)
}

func (o *Output) printAutoplay(a response.AutoplayResponse) error {
	for i, action := range a.Actions {
		fmt.Fprintf(o.w, "%3d. %s %s (%d changed)\n", i+1, action.Move.Kind, action.Move.Position, action.Changed)
	}
	return o.printGame(a.Game)
}

func (o *Output) printGameList(l response.GameList) error {
	if len(l.Games) == 0 {
		fmt.Fprintln(o.w, "No games")
		return nil
	}

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSIZE\tMINES\tSTATUS\tMOVES\tUPDATED")
	for _, g := range l.Games {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\t%d\t%s\n",
			g.ID, g.Width, g.Height, g.Mines, g.Status, g.Moves, g.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	fmt.Fprintf(o.w, "Status: %s (%s)\n", h.Status, h.Latency.Round(time.Millisecond))
}
