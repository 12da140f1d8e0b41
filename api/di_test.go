package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	listenCfg := net.ListenConfig{}

	ln, err := listenCfg.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer func() { _ = ln.Close() }()

	return ln.Addr().String()
}

func TestNewModule(t *testing.T) {
	t.Parallel()

	cfg := Config{Address: freeAddress(t), PresetsDir: t.TempDir()}
	cfg.SetDefaults()

	app := fxtest.New(t,
		fx.Supply(discardLogger()),
		NewModule(cfg),
	)

	app.RequireStart()
	defer app.RequireStop()

	client := &http.Client{Timeout: 5 * time.Second}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://"+cfg.Address+"/resolve",
		strings.NewReader(`{"preset":"web-api","name":"Orders Service"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, "Orders Service", body["name"])
	assert.Equal(t, "Orders_Service", body["package_name"])
}

func TestNewModule_InvalidAddress(t *testing.T) {
	t.Parallel()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(discardLogger()),
		NewModule(Config{Address: "127.0.0.1:not-a-port"}),
	)

	err := app.Start(context.Background())
	require.Error(t, err)
}
