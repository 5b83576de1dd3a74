package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/cardshoe/internal/deck"
	"github.com/lox/cardshoe/internal/fileutil"
	"github.com/lox/cardshoe/internal/game"
)

const snapshotVersion = 1

// Cards are stored once in a shared table and referenced by ID everywhere
// else, so a card held by a player and sitting in a shoe loads back as the
// same *deck.Card.
type snapshot struct {
	Version int            `json:"version"`
	Cards   []cardRecord   `json:"cards"`
	Decks   []deckRecord   `json:"decks"`
	Players []playerRecord `json:"players"`
	Games   []gameRecord   `json:"games"`
}

type cardRecord struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deckRecord struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
	timestamps
}

type playerRecord struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Cards []string `json:"cards"`
	timestamps
}

type gameDeckRecord struct {
	ID    string   `json:"id"`
	Cards []string `json:"cards"`
	Dealt []string `json:"dealt"`
}

type gameRecord struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	GameDeck gameDeckRecord `json:"game_deck"`
	Players  []string       `json:"players"`
	timestamps
}

// cardTable collects every distinct card while records are written.
type cardTable struct {
	seen  map[string]bool
	cards []cardRecord
}

func (t *cardTable) ids(cards []*deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID()
		if t.seen[c.ID()] {
			continue
		}
		t.seen[c.ID()] = true
		t.cards = append(t.cards, cardRecord{ID: c.ID(), Suit: c.Suit().String(), Rank: c.Rank().String()})
	}
	return out
}

// MarshalJSON encodes the whole store as a snapshot document.
func (s *Store) MarshalJSON() ([]byte, error) {
	table := &cardTable{seen: make(map[string]bool)}
	snap := snapshot{Version: snapshotVersion}

	for _, rec := range s.Decks.List() {
		d := rec.Value
		snap.Decks = append(snap.Decks, deckRecord{
			ID:         d.ID(),
			Name:       d.Name(),
			Cards:      table.ids(d.Cards()),
			timestamps: timestamps{rec.CreatedAt, rec.UpdatedAt},
		})
	}
	for _, rec := range s.Players.List() {
		p := rec.Value
		snap.Players = append(snap.Players, playerRecord{
			ID:         p.ID(),
			Name:       p.Name(),
			Cards:      table.ids(p.Cards()),
			timestamps: timestamps{rec.CreatedAt, rec.UpdatedAt},
		})
	}
	for _, rec := range s.Games.List() {
		g := rec.Value
		gd := g.GameDeck()
		players := make([]string, 0, g.PlayerCount())
		for _, p := range g.Players() {
			players = append(players, p.ID())
		}
		snap.Games = append(snap.Games, gameRecord{
			ID:   g.ID(),
			Name: g.Name(),
			GameDeck: gameDeckRecord{
				ID:    gd.ID(),
				Cards: table.ids(gd.Cards()),
				Dealt: gd.DealtIDs(),
			},
			Players:    players,
			timestamps: timestamps{rec.CreatedAt, rec.UpdatedAt},
		})
	}

	snap.Cards = table.cards
	return json.MarshalIndent(snap, "", "  ")
}

// Restore decodes a snapshot document. newRand, when set, supplies the
// shuffle source of each restored shoe.
func Restore(data []byte, newRand func() game.RandSource) (*Store, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	cards := make(map[string]*deck.Card, len(snap.Cards))
	for _, cr := range snap.Cards {
		suit, err := deck.ParseSuit(cr.Suit)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", cr.ID, err)
		}
		rank, err := deck.ParseRank(cr.Rank)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", cr.ID, err)
		}
		cards[cr.ID] = deck.RestoreCard(cr.ID, suit, rank)
	}
	resolve := func(owner string, ids []string) ([]*deck.Card, error) {
		out := make([]*deck.Card, len(ids))
		for i, id := range ids {
			c, ok := cards[id]
			if !ok {
				return nil, fmt.Errorf("%s references unknown card %s", owner, id)
			}
			out[i] = c
		}
		return out, nil
	}

	s := New()
	for _, dr := range snap.Decks {
		dc, err := resolve("deck "+dr.ID, dr.Cards)
		if err != nil {
			return nil, err
		}
		s.Decks.Put(Record[*deck.Deck]{
			Value:     deck.RestoreDeck(dr.ID, dr.Name, dc),
			CreatedAt: dr.CreatedAt,
			UpdatedAt: dr.UpdatedAt,
		})
	}

	players := make(map[string]*game.Player, len(snap.Players))
	for _, pr := range snap.Players {
		hand, err := resolve("player "+pr.ID, pr.Cards)
		if err != nil {
			return nil, err
		}
		p := game.RestorePlayer(pr.ID, pr.Name, hand)
		players[pr.ID] = p
		s.Players.Put(Record[*game.Player]{Value: p, CreatedAt: pr.CreatedAt, UpdatedAt: pr.UpdatedAt})
	}

	for _, gr := range snap.Games {
		g, err := restoreGame(gr, resolve, players, newRand)
		if err != nil {
			return nil, err
		}
		s.Games.Put(Record[*game.Game]{Value: g, CreatedAt: gr.CreatedAt, UpdatedAt: gr.UpdatedAt})
	}
	return s, nil
}

func restoreGame(
	gr gameRecord,
	resolve func(string, []string) ([]*deck.Card, error),
	players map[string]*game.Player,
	newRand func() game.RandSource,
) (*game.Game, error) {
	shoe, err := resolve("game "+gr.ID, gr.GameDeck.Cards)
	if err != nil {
		return nil, err
	}
	var opts []game.GameDeckOption
	if newRand != nil {
		opts = append(opts, game.WithRand(newRand()))
	}
	gd, err := game.RestoreGameDeck(gr.GameDeck.ID, shoe, gr.GameDeck.Dealt, opts...)
	if err != nil {
		return nil, fmt.Errorf("game %s: %w", gr.ID, err)
	}

	members := make([]*game.Player, 0, len(gr.Players))
	for _, id := range gr.Players {
		p, ok := players[id]
		if !ok {
			return nil, fmt.Errorf("game %s references unknown player %s", gr.ID, id)
		}
		for _, c := range p.Cards() {
			if !gd.IsDealt(c) {
				return nil, fmt.Errorf("game %s: player %s holds %s which is not dealt from the game deck", gr.ID, id, c.ID())
			}
		}
		members = append(members, p)
	}
	return game.RestoreGame(gr.ID, gr.Name, gd, members), nil
}

// Save writes the snapshot to path atomically
func (s *Store) Save(path string) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads the snapshot at path. A missing file yields an empty store.
func Load(path string, newRand func() game.RandSource) (*Store, error) {
	data, ok, err := fileutil.ReadFileIfExists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	if !ok {
		return New(), nil
	}
	return Restore(data, newRand)
}
