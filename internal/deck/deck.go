package deck

import "github.com/lox/cardshoe/internal/ident"

// CardsPerDeck is the size of a freshly initialized deck.
const CardsPerDeck = NumSuits * NumRanks

// Deck is a named template of 52 unique cards. Cards handed out by Cards are
// shared by reference with whoever takes them; re-initializing the deck mints
// new cards and never affects cards already taken.
type Deck struct {
	id    string
	name  string
	cards []*Card
}

// NewDeck creates a new standard 52-card deck
func NewDeck(name string) *Deck {
	d := &Deck{
		id:    ident.New(),
		name:  name,
		cards: make([]*Card, 0, CardsPerDeck),
	}
	d.Initialize()
	return d
}

// RestoreDeck rebuilds a deck from persisted state without minting cards.
func RestoreDeck(id, name string, cards []*Card) *Deck {
	return &Deck{
		id:    id,
		name:  name,
		cards: append(make([]*Card, 0, len(cards)), cards...),
	}
}

// Initialize discards the current cards and creates 52 new ones, suit-major
// from HEARTS to DIAMONDS and ACE to KING within each suit.
func (d *Deck) Initialize() {
	d.cards = make([]*Card, 0, CardsPerDeck)
	for suit := Hearts; suit <= Diamonds; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

func (d *Deck) ID() string { return d.id }

func (d *Deck) Name() string { return d.name }

func (d *Deck) SetName(name string) { d.name = name }

// Cards returns a copy of the deck's cards in order
func (d *Deck) Cards() []*Card {
	out := make([]*Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of cards in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}
