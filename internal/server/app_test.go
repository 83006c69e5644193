package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/kanban/internal/server/config"
	"github.com/dmitrijs2005/kanban/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.DatabaseDSN = repomanager.MemoryDSN
	cfg.AccessTokenSecret = "a"
	cfg.RefreshTokenSecret = "r"
	cfg.LogLevel = "error"
	return cfg
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	require.NotNil(t, app.httpServer)
	require.NotNil(t, app.userService)
	require.NotNil(t, app.cardService)
	require.NoError(t, app.db.Close())
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}
