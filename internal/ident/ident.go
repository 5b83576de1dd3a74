// Package ident generates the identifiers assigned to cards, decks, players
// and games.
//
// Identifiers are UUIDv7 values rendered as 26-character Crockford base32
// strings (the TypeID suffix encoding), so they sort by creation time and are
// safe to use as map keys, file keys and command line arguments.
package ident

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in an encoded identifier.
const Length = 26

// Crockford base32 alphabet used by TypeID.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// generator mints identifiers, reading random bits from reader or from
// crypto/rand when reader is nil.
type generator struct {
	reader io.Reader
}

var defaultGenerator = &generator{}

// New returns a fresh identifier from the default generator.
func New() string {
	return defaultGenerator.generate()
}

func (g *generator) generate() string {
	var (
		u   uuid.UUID
		err error
	)
	if g.reader != nil {
		u, err = uuid.NewV7FromReader(g.reader)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		panic("ident: failed to generate UUIDv7: " + err.Error())
	}
	return Encode(u)
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are left
// padded with two zero bits so the first character is always 0-7.
func Encode(u uuid.UUID) string {
	var out [Length]byte
	bit := -2
	for i := range out {
		var v byte
		for range 5 {
			v <<= 1
			if bit >= 0 && u[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
			bit++
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Validate checks that id is a well formed identifier.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("identifier must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("identifier first character must be 0-7, got %c", id[0])
	}
	for i, r := range id {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %c at position %d", r, i)
		}
	}
	return nil
}
