package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardshoe/internal/config"
	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/ident"
	"github.com/lox/cardshoe/internal/service"
	"github.com/lox/cardshoe/internal/store"
)

type testEnv struct {
	t     *testing.T
	dir   string
	store string
}

func newTestEnv(t *testing.T) *testEnv {
	dir := t.TempDir()
	return &testEnv{t: t, dir: dir, store: filepath.Join(dir, "state.json")}
}

func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{
		"version":     "test",
		"config_file": filepath.Join(e.dir, config.DefaultFile),
	})
	require.NoError(e.t, err)

	base := []string{"--store", e.store, "--log-level", "error", "--plain", "--seed", "1"}
	kctx, err := parser.Parse(append(base, args...))
	require.NoError(e.t, err)

	var out bytes.Buffer
	app, err := cli.Globals.open(context.Background(), &out)
	require.NoError(e.t, err)
	err = kctx.Run(app)
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "cardshoe %v", args)
	return out
}

func (e *testEnv) load() *store.Store {
	e.t.Helper()
	st, err := store.Load(e.store, nil)
	require.NoError(e.t, err)
	return st
}

func TestDealAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("deck", "create", "standard")
	env.mustRun("game", "create", "friday")
	env.mustRun("player", "create", "alice")

	st := env.load()
	deckID := st.Decks.List()[0].ID()
	gameID := st.Games.List()[0].ID()
	playerID := st.Players.List()[0].ID()

	env.mustRun("game", "add-deck", gameID, deckID)
	env.mustRun("game", "add-player", gameID, playerID)

	out := env.mustRun("game", "deal", gameID, playerID, "-n", "3")
	assert.Contains(t, out, "Dealt 3 card(s) to alice")
	assert.Contains(t, out, "ACE of HEARTS")

	// Count defaults to one.
	out = env.mustRun("game", "deal", gameID, playerID)
	assert.Contains(t, out, "Dealt 1 card(s)")
	assert.Contains(t, out, "FOUR of HEARTS")

	st = env.load()
	g, ok := st.Games.Get(gameID)
	require.True(t, ok)
	assert.Equal(t, deck.CardsPerDeck-4, g.Value.UndealtCount())

	out = env.mustRun("player", "total", playerID)
	assert.Contains(t, out, "10")

	out = env.mustRun("game", "suits", gameID)
	assert.Contains(t, out, "HEARTS")

	env.mustRun("game", "delete", gameID)
	st = env.load()
	assert.Zero(t, st.Games.Len())
	p, ok := st.Players.Get(playerID)
	require.True(t, ok)
	assert.Zero(t, p.Value.CardCount())
}

func TestCommandErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("game", "show", "missing")
	require.ErrorIs(t, err, game.ErrInvalidArgument)

	_, err = env.run("game", "show", ident.New())
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = env.run("deck", "create", " ")
	require.Error(t, err)
}

func TestSimulateUsesFlags(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("simulate", "--games", "6", "--players", "3", "--workers", "2")
	assert.Contains(t, out, "Simulation: 6 games, 1 deck(s), 3 players")
}
