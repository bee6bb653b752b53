// Package rowid generates short opaque row identifiers.
// Tokens are fixed-length base-36 strings with negligible collision
// probability within a single session's row population. They are not
// cryptographic and carry no ordering.
package rowid

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// Length of every generated token.
	Length = 9

	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	mu  sync.Mutex
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// New returns a fresh token.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}
