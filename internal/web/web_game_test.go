package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/display"
	"github.com/mcoot/minefield/internal/model"
)

func TestHomePage(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find("form[action='/games']").Length())
	width, _ := doc.Find("input[name='width']").Attr("value")
	assert.Equal(t, "10", width)
	assertContainsText(t, doc, "#game-list", "No games yet.")
}

func TestCreateGameSetsOwnerCookie(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	assert.True(t, ts.cookies.has("mf_game1"))

	rr := ts.get("/")
	doc := parseHTML(rr.Body)
	assert.Equal(t, 1, doc.Find("a[href='/games/game1']").Length())
}

func TestCreateGameRejectsBadForm(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/games", url.Values{"width": {"wide"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "invalid form values")
}

func TestCreateGameRejectsTooManyMines(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/games", url.Values{"width": {"2"}, "height": {"2"}, "mines": {"9"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "Could not create game")
}

func TestGamePageForOwner(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.get("/games/game1")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 9, doc.Find("#board td").Length())
	assert.Equal(t, 1, doc.Find("#controls").Length())
	assert.Equal(t, 0, doc.Find(".spectating").Length())
	assert.Equal(t, "1", doc.Find("#status .flags-left").Text())
}

func TestGamePageForSpectator(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.spectator().get("/games/game1")
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 0, doc.Find("#controls").Length())
	assert.Equal(t, 1, doc.Find(".spectating").Length())
}

func TestMissingGameRedirectsHome(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/nope")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "Game not found")
}

func TestStepWithHTMXSwapsBoard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.postHTMX("/games/game1/step", position("2", "2"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	require.Equal(t, 1, doc.Find("#board").Length())
	assert.True(t, doc.Find("#tile-2-2").HasClass("nomines"))
	assert.Equal(t, "1", strings.TrimSpace(doc.Find("#tile-1-1").Text()))
	// Only the mine is still hidden
	assert.Equal(t, 1, doc.Find("#board td button").Length())
	assert.Equal(t, "1", doc.Find("#status .tiles-left").Text())
}

func TestStepWithoutHTMXRedirects(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.post("/games/game1/step", position("2", "2"))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/games/game1", rr.Header().Get("Location"))
}

func TestFlagAndWin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	ts.postHTMX("/games/game1/step", position("2", "2"))
	rr := ts.postHTMX("/games/game1/flag", position("0", "0"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, display.GlyphFlag, strings.TrimSpace(doc.Find("#tile-0-0").Text()))
	assertContainsText(t, doc, "#status", "You win!")
}

func TestLosingRevealsBoard(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.postHTMX("/games/game1/step", position("0", "0"))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.True(t, doc.Find("#tile-0-0").HasClass("boom"))
	assertContainsText(t, doc, "#status", "Boom!")

	// Further moves are refused with a flash
	rr = ts.postHTMX("/games/game1/step", position("1", "1"))
	assert.Equal(t, "/games/game1", rr.Header().Get("HX-Redirect"))
	doc = parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "The game is over")
}

func TestSpectatorCannotPlay(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")
	spectator := ts.spectator()

	rr := spectator.postHTMX("/games/game1/step", position("2", "2"))
	assert.Equal(t, "/games/game1", rr.Header().Get("HX-Redirect"))

	view, err := ts.app.Controller.GetGame(t.Context(), "game1")
	require.NoError(t, err)
	assert.Equal(t, model.TileStateUnclicked, view.Tiles[2][2].State)
}

func TestInvalidPositionShowsFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.post("/games/game1/step", position("7", "7"))
	assert.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "invalid board position")
}

func TestResetGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")
	ts.postHTMX("/games/game1/step", position("0", "0"))

	rr := ts.postHTMX("/games/game1/reset", url.Values{})
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assert.Equal(t, 9, doc.Find("#board td button").Length())
	assertContainsText(t, doc, "#status", "Playing")
}

func TestAbandonGame(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("game1")

	rr := ts.post("/games/game1/abandon", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.has("mf_game1"))

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash", "Game abandoned")
	assert.Equal(t, 0, doc.Find("a[href='/games/game1']").Length())
}
