package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/api"
	"github.com/mcoot/minefield/internal/factory"
	"github.com/mcoot/minefield/internal/model"
	"github.com/mcoot/minefield/internal/testutil"
	"github.com/mcoot/minefield/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "minefield-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/minefield")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "tokens.json"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

// startTestServer serves the API and web routes.
// Game ids are queued before the server starts; boards are 3x3 layouts with the mine at (0,0)
// when created with --width 3 --height 3 --mines 1.
func startTestServer(t *testing.T, ids ...model.GameID) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	app := factory.NewTestApp()
	app.QueueGameIDs(ids...)

	logger := testutil.NopLogger()
	root := mux.NewRouter()
	api.Mount(root, api.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		Bots:       app.BotService,
	})
	web.Mount(root, web.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		HubManager: app.HubManager,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: root,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	ID        string `json:"id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Mines     int    `json:"mines"`
	FlagsLeft int    `json:"flags_left"`
	TilesLeft int    `json:"tiles_left"`
	Status    string `json:"status"`
}

type createResponse struct {
	Game  gameResponse `json:"game"`
	Token string       `json:"token"`
}

type moveResponse struct {
	Changed []json.RawMessage `json:"changed"`
	Waves   int               `json:"waves"`
	Game    gameResponse      `json:"game"`
}

type listResponse struct {
	Games []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Moves  int    `json:"moves"`
	} `json:"games"`
}

type healthResponse struct {
	Status string `json:"status"`
	Server string `json:"server"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newSmallGame(t *testing.T, cli *cliRunner) createResponse {
	t.Helper()

	output, err := cli.run("new", "--width", "3", "--height", "3", "--mines", "1")
	require.NoError(t, err, "output: %s", output)

	var resp createResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ts.addr, resp.Server)
}

func TestCLI_NewGetAndList(t *testing.T) {
	ts := startTestServer(t, "game1")
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	created := newSmallGame(t, cli)
	assert.Equal(t, "game1", created.Game.ID)
	assert.Equal(t, 1, created.Game.Mines)
	assert.NotEmpty(t, created.Token)

	output, err := cli.run("get", "game1")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, 9, game.TilesLeft)

	output, err = cli.run("list")
	require.NoError(t, err, "output: %s", output)
	var list listResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, "game1", list.Games[0].ID)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t, "game1")
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	newSmallGame(t, cli)

	// The token saved by "new" authorises the moves
	output, err := cli.run("step", "game1", "2", "2")
	require.NoError(t, err, "output: %s", output)
	var move moveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.Len(t, move.Changed, 8)
	assert.Equal(t, 1, move.Game.TilesLeft)
	assert.Equal(t, "playing", move.Game.Status)

	output, err = cli.run("flag", "game1", "0", "0")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.Equal(t, "won", move.Game.Status)

	output, err = cli.run("step", "game1", "1", "1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "over")
}

func TestCLI_ResetAndAbandon(t *testing.T) {
	ts := startTestServer(t, "game1")
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	created := newSmallGame(t, cli)

	output, err := cli.run("step", "game1", "0", "0")
	require.NoError(t, err, "output: %s", output)
	var move moveResponse
	require.NoError(t, json.Unmarshal([]byte(output), &move))
	assert.Equal(t, "lost", move.Game.Status)

	output, err = cli.run("reset", "game1")
	require.NoError(t, err, "output: %s", output)
	var game gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &game))
	assert.Equal(t, "playing", game.Status)
	assert.Equal(t, 9, game.TilesLeft)

	// A wrong token is refused
	output, err = cli.runWithToken("mf_wrong", "abandon", "game1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "forbidden")

	output, err = cli.runWithToken(created.Token, "abandon", "game1")
	require.NoError(t, err, "output: %s", output)
	var msg messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msg))
	assert.Equal(t, "Game abandoned", msg.Message)

	_, err = cli.run("get", "game1")
	assert.Error(t, err, "should not find game after abandon")
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// No token saved for this game
	output, err := cli.run("step", "missing", "0", "0")
	assert.Error(t, err)
	assert.Contains(t, output, "no owner token")

	output, err = cli.run("get", "missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	output, err = cli.run("step", "missing", "a", "0")
	assert.Error(t, err)
	assert.Contains(t, output, "invalid x")
}

func TestCLI_HintAndAutoplay(t *testing.T) {
	ts := startTestServer(t, "game1")
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	newSmallGame(t, cli)

	output, err := cli.run("hint", "game1")
	require.NoError(t, err, "output: %s", output)
	var hint struct {
		Strategy string `json:"strategy"`
		Move     struct {
			Kind string `json:"kind"`
		} `json:"move"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &hint))
	assert.Equal(t, "deduction", hint.Strategy)
	assert.Equal(t, "step", hint.Move.Kind)

	output, err = cli.run("autoplay", "game1")
	require.NoError(t, err, "output: %s", output)
	var autoplay struct {
		Actions []json.RawMessage `json:"actions"`
		Game    gameResponse      `json:"game"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &autoplay))
	assert.Len(t, autoplay.Actions, 2)
	assert.Equal(t, "won", autoplay.Game.Status)
}
