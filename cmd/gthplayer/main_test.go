package main

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/gothello/internal/board"
	"github.com/hailam/gothello/internal/player"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestQuitHangsUp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hungUp := make(chan struct{})

	// The game only returns once the connection is closed, like a blocked read.
	game := func(context.Context) (player.Result, error) {
		<-hungUp
		return player.Result{}, errors.New("connection closed")
	}
	hangUp := func() error {
		close(hungUp)
		return nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := playUntilQuit(ctx, game, hangUp)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("game still running after quit")
	}
}

func TestFinishedGameKeepsConnection(t *testing.T) {
	var hangUps atomic.Int32
	game := func(context.Context) (player.Result, error) {
		return player.Result{Winner: board.White}, nil
	}
	hangUp := func() error {
		hangUps.Add(1)
		return nil
	}

	res, err := playUntilQuit(context.Background(), game, hangUp)
	require.NoError(t, err)
	assert.Equal(t, board.White, res.Winner)
	assert.Zero(t, hangUps.Load())
}

func TestFailedGameDoesNotHangUp(t *testing.T) {
	var hangUps atomic.Int32
	boom := errors.New("server went away")
	game := func(context.Context) (player.Result, error) {
		return player.Result{}, boom
	}
	hangUp := func() error {
		hangUps.Add(1)
		return nil
	}

	_, err := playUntilQuit(context.Background(), game, hangUp)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, hangUps.Load())
}
