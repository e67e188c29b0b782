// Package roundid generates sortable identifiers for rounds so log lines
// from one sitting can be grouped and a round replayed from its seed.
package roundid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	mrand "math/rand/v2"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates UUIDv7 round IDs from a clock and a random source
type Generator struct {
	clock quartz.Clock
	rng   *mrand.Rand
}

// NewGenerator creates a generator. A nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *mrand.Rand) *Generator {
	return &Generator{clock: clock, rng: rng}
}

// New returns an ID for the current time
func (g *Generator) New() string {
	var uuid [16]byte

	// 48-bit millisecond timestamp
	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.rng.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encoding.EncodeToString(uuid[:])
}

// Validate checks that id is a well-formed round ID
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("round ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("invalid round ID: %w", err)
	}
	return nil
}
