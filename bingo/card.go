package bingo

import (
	"errors"
	"hash/fnv"
	"math/rand"
)

// ErrInsufficientPool is returned when the term pool holds fewer distinct
// terms than the grid needs. The pool is never silently truncated.
var ErrInsufficientPool = errors.New("term pool smaller than the grid")

// GenerateCard lays out a rows x cols card by taking the first rows*cols terms
// of a Fisher-Yates permutation of pool, row-major. Sampling is without
// replacement, so no term appears twice on one card. The function is pure:
// randomness comes only from rng.
func GenerateCard(pool []string, rows, cols int, rng *rand.Rand) ([][]string, error) {
	need := rows * cols
	if rows <= 0 || cols <= 0 {
		return nil, ErrInsufficientPool
	}
	if len(pool) < need {
		return nil, ErrInsufficientPool
	}

	picked := Shuffle(pool, rng)[:need]
	layout := make([][]string, rows)
	for r := 0; r < rows; r++ {
		layout[r] = picked[r*cols : (r+1)*cols]
	}
	return layout, nil
}

// Shuffle returns a Fisher-Yates shuffled copy of terms; the input is left
// untouched.
func Shuffle(terms []string, rng *rand.Rand) []string {
	out := make([]string, len(terms))
	copy(out, terms)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRand builds a rand source from a seed. Kept as a helper so callers pair
// it with CardSeed / DrawSeed instead of reaching for the global source.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// CardSeed seeds a player's card shuffle. Hashing session id and display name
// together makes a given player's card on a given session reproducible.
func CardSeed(sessionID, displayName string) int64 {
	return hashSeed(sessionID + "::" + displayName)
}

// DrawSeed seeds the session's draw-order shuffle, fixed at session creation
// and re-derivable after a restart.
func DrawSeed(sessionID, sessionSeed string) int64 {
	return hashSeed(sessionID + "::" + sessionSeed)
}

func hashSeed(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
