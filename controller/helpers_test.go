package controller

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"backoffice/api"
	"backoffice/client"
	"backoffice/config"
	"backoffice/devserver"
	"backoffice/session"
)

// startBackend serves an in-memory backend on a loopback port, logs in
// as the seeded admin and returns an API bound to it.
func startBackend(t *testing.T) (*devserver.Server, *api.API) {
	t.Helper()
	srv := devserver.New("test-secret")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	cfg := config.Config{
		BaseURL:        "http://" + ln.Addr().String(),
		RequestTimeout: 5 * time.Second,
		TokenFile:      filepath.Join(t.TempDir(), "token"),
	}
	store := session.New(cfg.TokenFile)
	a := api.New(client.New(cfg, store, nil))

	resp, err := a.Login(context.Background(), "admin@backoffice.dev", "admin123")
	require.NoError(t, err)
	require.NoError(t, store.SetCredentials(resp.User, resp.Token))
	return srv, a
}

// serveAPI runs an arbitrary fiber app and returns an API bound to it,
// for tests that need handcrafted responses.
func serveAPI(t *testing.T, app *fiber.App) *api.API {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	cfg := config.Config{
		BaseURL:        "http://" + ln.Addr().String(),
		RequestTimeout: 5 * time.Second,
	}
	return api.New(client.New(cfg, session.New(""), nil))
}

func testFile(field string) *client.File {
	return &client.File{Field: field, Name: "test.jpg", Content: []byte{0xFF, 0xD8, 0xFF}}
}
