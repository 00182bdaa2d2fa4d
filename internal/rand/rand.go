// Package rand generates short random identifiers for live subscriptions.
package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const (
	// IDLength is the length of identifiers returned by NewID.
	IDLength = 16

	bytesInUint64 = 8
	charset       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var defaultSource = newSource()

type source struct {
	mut sync.Mutex
	rng *rand.Rand
}

func newSource() *source {
	seed := make([]byte, bytesInUint64*2)
	if _, err := cryptorand.Read(seed); err != nil {
		panic("unreachable")
	}

	return &source{
		//nolint:gosec // identifiers are not secrets
		rng: rand.New(rand.NewPCG(
			binary.LittleEndian.Uint64(seed[:8]),
			binary.LittleEndian.Uint64(seed[8:]),
		)),
	}
}

func (s *source) base62(length int) string {
	buf := make([]byte, length)

	s.mut.Lock()
	for i := range buf {
		buf[i] = charset[s.rng.IntN(len(charset))]
	}
	s.mut.Unlock()

	return string(buf)
}

// NewID returns a random base62 string of IDLength characters.
// It is safe for concurrent use.
func NewID() string {
	return defaultSource.base62(IDLength)
}

// NewIDWithLength is NewID with a custom length.
func NewIDWithLength(length int) string {
	return defaultSource.base62(length)
}
