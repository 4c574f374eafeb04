package api_test

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/minefield/internal/api"
	"github.com/mcoot/minefield/internal/testutil"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestServerConfigFromEnv(t *testing.T) {
	cfg, err := api.ServerConfigFromEnv(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, api.DefaultServerConfig(), cfg)

	cfg, err = api.ServerConfigFromEnv(envOf(map[string]string{"HOST": "127.0.0.1", "PORT": "9090"}))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)

	_, err = api.ServerConfigFromEnv(envOf(map[string]string{"PORT": "eighty"}))
	assert.Error(t, err)

	_, err = api.ServerConfigFromEnv(envOf(map[string]string{"PORT": "70000"}))
	assert.Error(t, err)
}

func TestServerServesAndShutsDown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{Logger: testutil.NopLogger()})
	server := api.NewServer(router, api.DefaultServerConfig(), testutil.NopLogger())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(l) }()

	resp, err := http.Get("http://" + l.Addr().String() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
