package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherDeliversReload(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := t.TempDir()
	writeConfig(t, ws, "temperature: 5000\n")

	w, err := NewWatcher(ws)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeConfig(t, ws, "temperature: 6500\n")

	select {
	case cfg := <-w.Reloads():
		assert.Equal(t, 6500.0, cfg.Temperature)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcherKeepsPreviousConfigOnBadEdit(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := t.TempDir()
	writeConfig(t, ws, "temperature: 5000\n")

	w, err := NewWatcher(ws)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Invalid config: reload must not be delivered.
	writeConfig(t, ws, "temperature: -1\n")

	select {
	case cfg := <-w.Reloads():
		t.Fatalf("unexpected reload with temperature %g", cfg.Temperature)
	case <-time.After(1 * time.Second):
	}

	// A later valid edit still comes through.
	writeConfig(t, ws, "temperature: 4200\n")
	select {
	case cfg := <-w.Reloads():
		assert.Equal(t, 4200.0, cfg.Temperature)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after valid edit")
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Start(context.Background())) // second Start is a no-op

	w.Stop()
	w.Stop() // second Stop must not panic or block
}
