package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/api"
	"github.com/mcoot/minefield/internal/api/response"
	"github.com/mcoot/minefield/internal/dependencies/mocks"
	"github.com/mcoot/minefield/internal/display"
	"github.com/mcoot/minefield/internal/engine"
	"github.com/mcoot/minefield/internal/factory"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/services/bot"
	"github.com/mcoot/minefield/internal/testutil"
	"github.com/mcoot/minefield/internal/web"
)

// newCornerGame builds a 3x3 game with its only mine at (0,0)
func newCornerGame(t *testing.T) *engine.Game {
	t.Helper()
	game, err := engine.New(engine.Config{Width: 3, Height: 3, Mines: 1}, engine.WithLayout([]model.Position{{X: 0, Y: 0}}))
	require.NoError(t, err)
	return game
}

func TestTokenStore(t *testing.T) {
	c := &Config{TokenFile: filepath.Join(t.TempDir(), "nested", "tokens.json")}

	// Missing file means no tokens
	token, err := c.TokenFor("game1")
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, c.SaveToken("game1", "mf_one"))
	require.NoError(t, c.SaveToken("game2", "mf_two"))

	token, err = c.TokenFor("game1")
	require.NoError(t, err)
	assert.Equal(t, "mf_one", token)

	require.NoError(t, c.ForgetToken("game1"))
	require.NoError(t, c.ForgetToken("never-saved"))

	token, err = c.TokenFor("game1")
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = c.TokenFor("game2")
	require.NoError(t, err)
	assert.Equal(t, "mf_two", token)
}

func TestExplicitTokenWins(t *testing.T) {
	c := &Config{Token: "mf_flag", TokenFile: filepath.Join(t.TempDir(), "tokens.json")}
	require.NoError(t, c.SaveToken("game1", "mf_file"))

	token, err := c.TokenFor("game1")
	require.NoError(t, err)
	assert.Equal(t, "mf_flag", token)
}

func TestRenderBoard(t *testing.T) {
	game := newCornerGame(t)
	game.Tile(model.Position{X: 2, Y: 2}).StepOn()
	game.Settle()
	game.Tile(model.Position{X: 0, Y: 0}).PutFlag()

	board, err := RenderBoard(game.View())
	require.NoError(t, err)

	assert.Contains(t, board, display.GlyphFlag)
	assert.Contains(t, board, "1")
	assert.Contains(t, board, emptyGlyph)
	assert.NotContains(t, board, hiddenGlyph)
	assert.Contains(t, board, "Flags left: 0")
	assert.Contains(t, board, "Tiles left: 1")
}

func TestRenderBoardAfterLoss(t *testing.T) {
	game := newCornerGame(t)
	game.Tile(model.Position{X: 0, Y: 0}).StepOn()

	board, err := RenderBoard(game.View())
	require.NoError(t, err)
	assert.Contains(t, board, display.GlyphMine)
	assert.Contains(t, board, "boom!")
}

func TestRenderBoardRejectsUnknownState(t *testing.T) {
	view := newCornerGame(t).View()
	view.Tiles[1][1].State = "SIDEWAYS"

	_, err := RenderBoard(view)
	assert.Error(t, err)
}

func TestPlayLoopWin(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("s 2 2\nf 0 0\nq\n")

	require.NoError(t, playLoop(in, &out, newCornerGame(t), nil))
	assert.Contains(t, out.String(), "you win!")
	assert.Contains(t, out.String(), "Game over")
}

func TestPlayLoopLoseAndReset(t *testing.T) {
	game := newCornerGame(t)
	var out bytes.Buffer
	in := strings.NewReader("s 0 0\nr\n")

	require.NoError(t, playLoop(in, &out, game, nil))
	assert.Contains(t, out.String(), "boom!")
	assert.True(t, game.IsPlaying())
	assert.Equal(t, 9, game.TilesLeft())
}

func TestPlayLoopBot(t *testing.T) {
	game := newCornerGame(t)
	helper := bot.NewDeductionStrategy(bot.NewRandomStrategy(mocks.NewMockRandom()))
	var out bytes.Buffer
	in := strings.NewReader("b\nb\nb\n")

	require.NoError(t, playLoop(in, &out, game, helper))
	assert.Contains(t, out.String(), "Bot: step (2, 2)")
	assert.Contains(t, out.String(), "Bot: flag (0, 0)")
	assert.Contains(t, out.String(), "you win!")
	assert.Contains(t, out.String(), "The bot has no move to make")
}

func TestPlayLoopBadInput(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("dance\ns 5 5\ns 1\nf a 1\nh\n")

	require.NoError(t, playLoop(in, &out, newCornerGame(t), nil))
	assert.Contains(t, out.String(), `Unknown command "dance"`)
	assert.Contains(t, out.String(), "no tile at (5, 5)")
	assert.Contains(t, out.String(), "usage: s <x> <y>")
	assert.Contains(t, out.String(), "invalid x: a")
	assert.Contains(t, out.String(), "toggle a flag")
}

func TestOutputJSON(t *testing.T) {
	var out bytes.Buffer
	view := newCornerGame(t).View()

	require.NoError(t, NewOutputTo("json", &out).Print(view))

	var decoded model.GameView
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, 9, decoded.TilesLeft)
}

func TestOutputText(t *testing.T) {
	game := newCornerGame(t)
	view := game.View()
	view.ID = "game1"

	var out bytes.Buffer
	require.NoError(t, NewOutputTo("text", &out).Print(response.CreateGameResponse{Game: view, Token: "mf_abc"}))
	assert.Contains(t, out.String(), "Game: game1 (3x3, 1 mines)")
	assert.Contains(t, out.String(), "Token: mf_abc")

	out.Reset()
	require.NoError(t, NewOutputTo("text", &out).Print(response.MoveResponse{Changed: make([]model.TileView, 8), Waves: 3, Game: view}))
	assert.Contains(t, out.String(), "Changed 8 tiles in 3 waves")

	out.Reset()
	require.NoError(t, NewOutputTo("text", &out).Print(response.HintResponse{Strategy: "deduction", Move: bot.Move{Kind: model.MoveFlag, Position: model.Position{X: 0, Y: 0}}}))
	assert.Contains(t, out.String(), "deduction suggests: flag (0, 0)")

	out.Reset()
	require.NoError(t, NewOutputTo("text", &out).Print(response.GameList{}))
	assert.Contains(t, out.String(), "No games")

	out.Reset()
	list := response.GameList{Games: []model.GameSummary{{ID: "game1", Width: 3, Height: 3, Mines: 1, Status: model.GameStatusWon, Moves: 2}}}
	require.NoError(t, NewOutputTo("text", &out).Print(list))
	assert.Contains(t, out.String(), "game1")
	assert.Contains(t, out.String(), "3x3")
	assert.Contains(t, out.String(), "won")
}

func TestStreamEventsUntilAbandoned(t *testing.T) {
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })
	app.QueueGameIDs("game1")

	server := httptest.NewServer(web.NewRouter(web.RouterConfig{
		Logger:     testutil.NopLogger(),
		Controller: app.Controller,
		HubManager: app.HubManager,
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	_, err := app.Controller.CreateGame(ctx, engine.Config{Width: 3, Height: 3, Mines: 1})
	require.NoError(t, err)

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- streamEvents(ctx, &out, server.URL, "game1", true)
	}()

	require.Eventually(t, func() bool {
		hub := app.HubManager.GetHub("game1")
		return hub != nil && hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, app.Controller.AbandonGame(ctx, "game1"))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after the game was abandoned")
	}

	var events []string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var evt SSEEvent
		require.NoError(t, json.Unmarshal([]byte(line), &evt))
		events = append(events, evt.Event)
	}
	assert.Equal(t, []string{"connected", "game_abandoned"}, events)
}

func TestStreamEventsMissingGame(t *testing.T) {
	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	server := httptest.NewServer(web.NewRouter(web.RouterConfig{
		Logger:     testutil.NopLogger(),
		Controller: app.Controller,
		HubManager: app.HubManager,
	}))
	t.Cleanup(server.Close)

	var out bytes.Buffer
	err := streamEvents(context.Background(), &out, server.URL, "missing", false)
	assert.ErrorContains(t, err, "not found")
}

func TestClientReturnsAPIError(t *testing.T) {
	app := factory.NewTestApp()
	defer func() { _ = app.Close() }()
	app.QueueGameIDs("game1")

	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:     testutil.NopLogger(),
		Controller: app.Controller,
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "")

	var view model.GameView
	err := c.Get(gamePath("missing"), &view)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "GAME_NOT_FOUND", apiErr.Code)

	var created response.CreateGameResponse
	require.NoError(t, c.Post("/api/v1/games", map[string]int{"width": 3, "height": 3, "mines": 1}, &created))

	c.SetToken("not-the-token")
	err = c.Post(gamePath("game1")+"/step", model.Position{X: 2, Y: 2}, nil)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	c.SetToken(created.Token)
	var moved response.MoveResponse
	require.NoError(t, c.Post(gamePath("game1")+"/step", model.Position{X: 2, Y: 2}, &moved))
	assert.Len(t, moved.Changed, 8)
}
