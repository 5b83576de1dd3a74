package deck

import (
	"fmt"
	"strings"

	"github.com/lox/cardshoe/internal/ident"
)

// Suit represents a card suit
type Suit int

// Suits in deck iteration order.
const (
	Hearts Suit = iota
	Spades
	Clubs
	Diamonds
)

// NumSuits is the number of suits in a standard deck.
const NumSuits = 4

// Suits returns every suit in deck iteration order.
func Suits() []Suit {
	return []Suit{Hearts, Spades, Clubs, Diamonds}
}

// String returns the upper case suit name, e.g. "HEARTS"
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "HEARTS"
	case Spades:
		return "SPADES"
	case Clubs:
		return "CLUBS"
	case Diamonds:
		return "DIAMONDS"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns the unicode symbol for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= Diamonds
}

// ParseSuit parses a suit name such as "hearts" or "HEARTS".
func ParseSuit(s string) (Suit, error) {
	for _, suit := range Suits() {
		if strings.EqualFold(s, suit.String()) {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("invalid suit: %q", s)
}

// Rank represents a card rank. The numeric value of a rank is its face value.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NumRanks is the number of ranks per suit.
const NumRanks = 13

var rankNames = [...]string{
	Ace:   "ACE",
	Two:   "TWO",
	Three: "THREE",
	Four:  "FOUR",
	Five:  "FIVE",
	Six:   "SIX",
	Seven: "SEVEN",
	Eight: "EIGHT",
	Nine:  "NINE",
	Ten:   "TEN",
	Jack:  "JACK",
	Queen: "QUEEN",
	King:  "KING",
}

// String returns the upper case rank name, e.g. "QUEEN"
func (r Rank) String() string {
	if !r.Valid() {
		return "UNKNOWN"
	}
	return rankNames[r]
}

// Valid reports whether r is between Ace and King.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// FaceValue returns the scoring value of the rank: ACE=1 through KING=13.
func (r Rank) FaceValue() int {
	if !r.Valid() {
		return 0
	}
	return int(r)
}

// ParseRank parses a rank name such as "ace" or "KING".
func ParseRank(s string) (Rank, error) {
	for r := Ace; r <= King; r++ {
		if strings.EqualFold(s, rankNames[r]) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

// Card is one physical playing card. Two cards are the same card only if
// their IDs match; a two-deck shoe holds two distinct ACE of HEARTS cards.
// Suit and rank are fixed at creation.
type Card struct {
	id   string
	suit Suit
	rank Rank
}

// NewCard creates a card with a fresh identity
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{id: ident.New(), suit: suit, rank: rank}
}

// RestoreCard rebuilds a card whose identity is already known, e.g. when a
// snapshot is loaded.
func RestoreCard(id string, suit Suit, rank Rank) *Card {
	return &Card{id: id, suit: suit, rank: rank}
}

func (c *Card) ID() string { return c.id }

func (c *Card) Suit() Suit { return c.suit }

func (c *Card) Rank() Rank { return c.rank }

// FaceValue returns the scoring value of the card's rank
func (c *Card) FaceValue() int {
	return c.rank.FaceValue()
}

// Key returns the "<SUIT>-<RANK>" aggregation key, e.g. "HEARTS-ACE"
func (c *Card) Key() string {
	return Key(c.suit, c.rank)
}

// Key builds the "<SUIT>-<RANK>" aggregation key for a suit and rank.
func Key(suit Suit, rank Rank) string {
	return suit.String() + "-" + rank.String()
}

// Equal reports whether both cards are the same physical card
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.id == other.id
}

// IsRed returns true if the card is red
func (c *Card) IsRed() bool {
	return c.suit.IsRed()
}

// String returns e.g. "ACE of HEARTS"
func (c *Card) String() string {
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}
