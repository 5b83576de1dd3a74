package game

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/ident"
)

// Game owns exactly one GameDeck and references a set of players. Every card
// in a member's hand is dealt from this game's shoe; Game is the only thing
// that moves cards between the two, so it keeps that invariant.
//
// Game is not safe for concurrent use. Callers serialize operations per game.
type Game struct {
	id       string
	name     string
	gameDeck *GameDeck
	players  map[string]*Player
}

// NewGame creates a game with an empty shoe and no players. Options configure
// the shoe.
func NewGame(name string, opts ...GameDeckOption) *Game {
	return RestoreGame(ident.New(), name, NewGameDeck(nil, opts...), nil)
}

// RestoreGame rebuilds a game around an already loaded shoe and players.
func RestoreGame(id, name string, gd *GameDeck, players []*Player) *Game {
	g := &Game{
		id:       id,
		name:     name,
		gameDeck: gd,
		players:  make(map[string]*Player, len(players)),
	}
	for _, p := range players {
		g.players[p.ID()] = p
	}
	return g
}

func (g *Game) ID() string { return g.id }

func (g *Game) Name() string { return g.name }

func (g *Game) SetName(name string) { g.name = name }

// GameDeck returns the game's shoe
func (g *Game) GameDeck() *GameDeck { return g.gameDeck }

// AddDeck pours a deck's cards into the shoe and returns how many were new
// to it
func (g *Game) AddDeck(d *deck.Deck) int {
	return g.gameDeck.AddDeck(d)
}

// AddPlayer adds a player to the game. Adding a member again is a no-op.
func (g *Game) AddPlayer(p *Player) {
	g.players[p.ID()] = p
}

// HasPlayer reports whether the player is a member of the game
func (g *Game) HasPlayer(p *Player) bool {
	_, ok := g.players[p.ID()]
	return ok
}

// RemovePlayer returns the player's hand to the shoe, clears it and drops
// the player from the game.
func (g *Game) RemovePlayer(p *Player) error {
	member, ok := g.players[p.ID()]
	if !ok {
		return fmt.Errorf("remove %s: %w", p.ID(), ErrPlayerNotInGame)
	}
	g.gameDeck.ReturnCards(member.Cards())
	member.RemoveAllCards()
	delete(g.players, p.ID())
	return nil
}

// DealCards deals up to count cards to a member and returns how many were
// dealt. An exhausted shoe ends the deal early without error.
func (g *Game) DealCards(p *Player, count int) (int, error) {
	dealt, err := g.Deal(p, count)
	return len(dealt), err
}

// Deal is DealCards returning the dealt cards in deal order.
func (g *Game) Deal(p *Player, count int) ([]*deck.Card, error) {
	if count <= 0 {
		return nil, fmt.Errorf("deal count must be greater than zero, got %d: %w", count, ErrInvalidArgument)
	}
	member, ok := g.players[p.ID()]
	if !ok {
		return nil, fmt.Errorf("deal to %s: %w", p.ID(), ErrPlayerNotInGame)
	}

	dealt := make([]*deck.Card, 0, count)
	for len(dealt) < count {
		c, ok := g.gameDeck.DealCard()
		if !ok {
			break
		}
		member.AddCard(c)
		dealt = append(dealt, c)
	}
	return dealt, nil
}

// Release returns every member's hand to the shoe and empties the player set.
func (g *Game) Release() {
	for id, p := range g.players {
		g.gameDeck.ReturnCards(p.Cards())
		p.RemoveAllCards()
		delete(g.players, id)
	}
}

// ShuffleGameDeck shuffles the shoe
func (g *Game) ShuffleGameDeck() {
	g.gameDeck.Shuffle()
}

// UndealtCount returns the number of undealt cards in the shoe
func (g *Game) UndealtCount() int {
	return g.gameDeck.UndealtCount()
}

// UndealtCardsBySuit returns undealt counts for all four suits
func (g *Game) UndealtCardsBySuit() map[deck.Suit]int {
	return g.gameDeck.UndealtCardsBySuit()
}

// UndealtCardsBySuitAndRank returns undealt counts per "<SUIT>-<RANK>" key
func (g *Game) UndealtCardsBySuitAndRank() map[string]int {
	return g.gameDeck.UndealtCardsBySuitAndRank()
}

// PlayerCount returns the number of members
func (g *Game) PlayerCount() int {
	return len(g.players)
}

// Players returns the members ordered by ID
func (g *Game) Players() []*Player {
	return slices.SortedFunc(maps.Values(g.players), func(a, b *Player) int {
		return strings.Compare(a.ID(), b.ID())
	})
}

// PlayersWithTotalValue returns the members sorted by hand value, highest
// first. Equal totals are ordered by player ID.
func (g *Game) PlayersWithTotalValue() []*Player {
	return slices.SortedFunc(maps.Values(g.players), func(a, b *Player) int {
		if c := cmp.Compare(b.TotalValue(), a.TotalValue()); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
}
