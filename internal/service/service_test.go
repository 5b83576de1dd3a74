package service

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/game"
	"github.com/lox/cardshoe/internal/ident"
	"github.com/lox/cardshoe/internal/randutil"
	"github.com/lox/cardshoe/internal/store"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T, opts ...Option) (*Services, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(epoch)

	seed := int64(0)
	base := []Option{
		WithClock(clock),
		WithLogger(log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})),
		WithRandFactory(func() game.RandSource {
			seed++
			return randutil.New(seed)
		}),
	}
	return New(store.New(), append(base, opts...)...), clock
}

// setupGame creates a game holding one deck and the named players.
func setupGame(t *testing.T, svc *Services, players ...string) (GameView, []PlayerView) {
	t.Helper()
	d, err := svc.Decks.CreateDeck("standard")
	require.NoError(t, err)
	g, err := svc.Games.CreateGame("table")
	require.NoError(t, err)
	_, err = svc.Games.AddDeckToGame(g.ID, d.ID)
	require.NoError(t, err)

	var views []PlayerView
	for _, name := range players {
		p, err := svc.Players.CreatePlayer(name)
		require.NoError(t, err)
		_, err = svc.Games.AddPlayerToGame(g.ID, p.ID)
		require.NoError(t, err)
		views = append(views, p)
	}
	g, err = svc.Games.FindGame(g.ID)
	require.NoError(t, err)
	return g, views
}

func TestDeckService(t *testing.T) {
	t.Parallel()

	svc, clock := newTestServices(t)

	d, err := svc.Decks.CreateDeck("  blue back  ")
	require.NoError(t, err)
	assert.Equal(t, "blue back", d.Name)
	assert.Equal(t, deck.CardsPerDeck, d.CardCount)
	assert.Equal(t, epoch, d.CreatedAt)
	assert.Equal(t, epoch, d.UpdatedAt)

	_, err = svc.Decks.CreateDeck("   ")
	require.ErrorIs(t, err, game.ErrInvalidArgument)

	clock.Advance(time.Minute)
	re, err := svc.Decks.ReinitializeDeck(d.ID)
	require.NoError(t, err)
	assert.Equal(t, epoch, re.CreatedAt)
	assert.Equal(t, epoch.Add(time.Minute), re.UpdatedAt)

	assert.Len(t, svc.Decks.ListDecks(), 1)

	require.NoError(t, svc.Decks.DeleteDeck(d.ID))
	_, err = svc.Decks.FindDeck(d.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Decks.DeleteDeck(d.ID), ErrNotFound)
}

func TestDealCardsToPlayer(t *testing.T) {
	t.Parallel()

	t.Run("deals in shoe order", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestServices(t)
		g, players := setupGame(t, svc, "alice")

		res, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 3)
		require.NoError(t, err)
		assert.False(t, res.Short())
		require.Len(t, res.Dealt, 3)

		// Unshuffled shoe starts with the hearts ace, two and three.
		assert.Equal(t, deck.Ace, res.Dealt[0].Rank)
		assert.Equal(t, deck.Two, res.Dealt[1].Rank)
		assert.Equal(t, deck.Three, res.Dealt[2].Rank)
		assert.Equal(t, 6, res.Player.TotalValue)
		assert.Equal(t, 49, res.Game.UndealtCount)

		total, err := svc.Players.PlayerTotalValue(players[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 6, total)
	})

	t.Run("short deal when shoe runs out", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestServices(t)
		g, players := setupGame(t, svc, "alice", "bob")

		_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 50)
		require.NoError(t, err)

		res, err := svc.Games.DealCardsToPlayer(g.ID, players[1].ID, 5)
		require.NoError(t, err)
		assert.True(t, res.Short())
		assert.Len(t, res.Dealt, 2)
		assert.Zero(t, res.Game.UndealtCount)
	})

	t.Run("strict capacity rejects oversize requests", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestServices(t, WithDealing(DefaultMaxDealCount, true))
		g, players := setupGame(t, svc, "alice")

		_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 50)
		require.NoError(t, err)

		_, err = svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 3)
		require.ErrorIs(t, err, ErrInsufficientCards)
		require.ErrorIs(t, err, game.ErrInvalidArgument)

		cards, err := svc.Players.PlayerCards(players[0].ID)
		require.NoError(t, err)
		assert.Len(t, cards, 50)
	})

	t.Run("rejects bad requests", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestServices(t)
		g, players := setupGame(t, svc, "alice")
		outsider, err := svc.Players.CreatePlayer("eve")
		require.NoError(t, err)

		tests := []struct {
			name     string
			gameID   string
			playerID string
			count    int
			want     error
		}{
			{"zero count", g.ID, players[0].ID, 0, game.ErrInvalidArgument},
			{"negative count", g.ID, players[0].ID, -1, game.ErrInvalidArgument},
			{"above maximum", g.ID, players[0].ID, DefaultMaxDealCount + 1, game.ErrInvalidArgument},
			{"not a member", g.ID, outsider.ID, 1, game.ErrPlayerNotInGame},
			{"unknown game", ident.New(), players[0].ID, 1, ErrNotFound},
			{"unknown player", g.ID, ident.New(), 1, ErrNotFound},
			{"malformed game id", "missing", players[0].ID, 1, game.ErrInvalidArgument},
			{"malformed player id", g.ID, "missing", 1, game.ErrInvalidArgument},
		}
		for _, tt := range tests {
			_, err := svc.Games.DealCardsToPlayer(tt.gameID, tt.playerID, tt.count)
			assert.ErrorIs(t, err, tt.want, tt.name)
		}

		after, err := svc.Games.FindGame(g.ID)
		require.NoError(t, err)
		assert.Equal(t, deck.CardsPerDeck, after.UndealtCount)
	})
}

func TestPlayerMembership(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice")
	alice := players[0]

	// Joining twice is a no-op.
	again, err := svc.Games.AddPlayerToGame(g.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.PlayerCount)

	other, err := svc.Games.CreateGame("other")
	require.NoError(t, err)
	_, err = svc.Games.AddPlayerToGame(other.ID, alice.ID)
	require.ErrorIs(t, err, ErrPlayerInAnotherGame)

	_, err = svc.Games.DealCardsToPlayer(g.ID, alice.ID, 4)
	require.NoError(t, err)

	after, err := svc.Games.RemovePlayerFromGame(g.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, after.PlayerCount)
	assert.Equal(t, deck.CardsPerDeck, after.UndealtCount)

	p, err := svc.Players.FindPlayer(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Cards)

	_, err = svc.Games.RemovePlayerFromGame(g.ID, alice.ID)
	require.ErrorIs(t, err, game.ErrPlayerNotInGame)

	_, err = svc.Games.AddPlayerToGame(other.ID, alice.ID)
	require.NoError(t, err)
}

func TestClearPlayerCardsReturnsThemToShoe(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice")

	_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 10)
	require.NoError(t, err)

	p, err := svc.Players.ClearPlayerCards(players[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Cards)
	assert.Zero(t, p.TotalValue)

	view, err := svc.Games.FindGame(g.ID)
	require.NoError(t, err)
	assert.Equal(t, deck.CardsPerDeck, view.UndealtCount)
	assert.Equal(t, 1, view.PlayerCount)
}

func TestDeletePlayerLeavesGame(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice", "bob")

	_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Players.DeletePlayer(players[0].ID))
	require.ErrorIs(t, svc.Players.DeletePlayer(players[0].ID), ErrNotFound)

	view, err := svc.Games.FindGame(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.PlayerCount)
	assert.Equal(t, deck.CardsPerDeck, view.UndealtCount)
}

func TestDeleteGameReleasesHands(t *testing.T) {
	t.Parallel()

	svc, clock := newTestServices(t)
	g, players := setupGame(t, svc, "alice")

	_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 5)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	require.NoError(t, svc.Games.DeleteGame(g.ID))
	_, err = svc.Games.FindGame(g.ID)
	require.ErrorIs(t, err, ErrNotFound)

	p, err := svc.Players.FindPlayer(players[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Cards)
	assert.Equal(t, epoch.Add(time.Hour), p.UpdatedAt)

	// The player is free to join another game.
	other, err := svc.Games.CreateGame("next")
	require.NoError(t, err)
	_, err = svc.Games.AddPlayerToGame(other.ID, players[0].ID)
	require.NoError(t, err)
}

func TestRankingAndAggregates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice", "bob")

	// Unshuffled: alice gets A,2 (3), bob gets 3,4,5 (12).
	_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 2)
	require.NoError(t, err)
	_, err = svc.Games.DealCardsToPlayer(g.ID, players[1].ID, 3)
	require.NoError(t, err)

	scores, err := svc.Games.PlayersWithTotalValues(g.ID)
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "bob", scores[0].Name)
	assert.Equal(t, 12, scores[0].TotalValue)
	assert.Equal(t, 3, scores[0].CardCount)
	assert.Equal(t, "alice", scores[1].Name)
	assert.Equal(t, 3, scores[1].TotalValue)

	bySuit, err := svc.Games.UndealtCardsBySuit(g.ID)
	require.NoError(t, err)
	assert.Equal(t, map[deck.Suit]int{deck.Hearts: 8, deck.Spades: 13, deck.Clubs: 13, deck.Diamonds: 13}, bySuit)

	byRank, err := svc.Games.UndealtCardsBySuitAndRank(g.ID)
	require.NoError(t, err)
	assert.NotContains(t, byRank, deck.Key(deck.Hearts, deck.Ace))
	assert.Equal(t, 1, byRank[deck.Key(deck.Hearts, deck.King)])
	assert.Len(t, byRank, 47)

	remaining, err := svc.Games.RemainingCards(g.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 47)
	assert.Equal(t, deck.Hearts, remaining[0].Suit)
	assert.Equal(t, deck.King, remaining[0].Rank)
	assert.Equal(t, deck.Diamonds, remaining[46].Suit)
	assert.Equal(t, deck.Ace, remaining[46].Rank)

	members, err := svc.Games.GamePlayers(g.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestShuffleIsDeterministicWithSeededFactory(t *testing.T) {
	t.Parallel()

	deal := func() []CardView {
		svc, _ := newTestServices(t)
		g, players := setupGame(t, svc, "alice")
		_, err := svc.Games.ShuffleGameDeck(g.ID)
		require.NoError(t, err)
		res, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 5)
		require.NoError(t, err)
		return res.Dealt
	}

	first, second := deal(), deal()
	require.Len(t, first, 5)
	for i := range first {
		assert.Equal(t, first[i].Suit, second[i].Suit)
		assert.Equal(t, first[i].Rank, second[i].Rank)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice")
	_, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 4)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, svc.Save(path))

	st, err := store.Load(path, nil)
	require.NoError(t, err)
	reloaded := New(st)

	view, err := reloaded.Games.FindGame(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 48, view.UndealtCount)
	assert.Equal(t, epoch, view.CreatedAt)

	cards, err := reloaded.Players.PlayerCards(players[0].ID)
	require.NoError(t, err)
	assert.Len(t, cards, 4)

	_, err = reloaded.Games.RemovePlayerFromGame(g.ID, players[0].ID)
	require.NoError(t, err)
	view, err = reloaded.Games.FindGame(g.ID)
	require.NoError(t, err)
	assert.Equal(t, deck.CardsPerDeck, view.UndealtCount)
}

func TestNotFoundErrorsNameTheEntity(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	id := ident.New()
	_, err := svc.Players.FindPlayer(id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "player "+id)
}

func TestMalformedIDsAreInvalidArguments(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"find deck", func() error { _, err := svc.Decks.FindDeck("nope"); return err }},
		{"delete deck", func() error { return svc.Decks.DeleteDeck("") }},
		{"find player", func() error { _, err := svc.Players.FindPlayer("NOT-AN-ID"); return err }},
		{"find game", func() error { _, err := svc.Games.FindGame("8" + ident.New()[1:]); return err }},
	}
	for _, tt := range tests {
		err := tt.call()
		assert.ErrorIs(t, err, game.ErrInvalidArgument, tt.name)
		assert.NotErrorIs(t, err, ErrNotFound, tt.name)
	}
}

func TestAddingSameDeckTwiceAddsNothing(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t, WithDealing(DefaultMaxDealCount, true))
	g, players := setupGame(t, svc, "alice")
	decks := svc.Decks.ListDecks()
	require.Len(t, decks, 1)

	view, err := svc.Games.AddDeckToGame(g.ID, decks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, deck.CardsPerDeck, view.UndealtCount)

	res, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, deck.CardsPerDeck)
	require.NoError(t, err)
	assert.Len(t, res.Dealt, deck.CardsPerDeck)
	assert.Zero(t, res.Game.UndealtCount)

	bySuit, err := svc.Games.UndealtCardsBySuit(g.ID)
	require.NoError(t, err)
	sum := 0
	for _, n := range bySuit {
		sum += n
	}
	assert.Equal(t, res.Game.UndealtCount, sum)

	remaining, err := svc.Games.RemainingCards(g.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, err = svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 1)
	require.ErrorIs(t, err, ErrInsufficientCards)
}

func TestDealtCardsMatchHand(t *testing.T) {
	t.Parallel()

	svc, _ := newTestServices(t)
	g, players := setupGame(t, svc, "alice")
	_, err := svc.Games.ShuffleGameDeck(g.ID)
	require.NoError(t, err)

	res, err := svc.Games.DealCardsToPlayer(g.ID, players[0].ID, 6)
	require.NoError(t, err)

	hand := make(map[string]bool)
	for _, c := range res.Player.Cards {
		hand[c.ID] = true
	}
	require.Len(t, res.Dealt, 6)
	for _, c := range res.Dealt {
		assert.True(t, hand[c.ID], "dealt card %s missing from hand", c.ID)
	}
}
