package rand

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID()
	require.Len(t, id, IDLength)
	for _, r := range id {
		assert.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
	}
}

func TestNewIDWithLength(t *testing.T) {
	assert.Len(t, NewIDWithLength(4), 4)
	assert.Equal(t, "", NewIDWithLength(0))
}

func TestNewID_ConcurrentUnique(t *testing.T) {
	const n = 1000

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := NewID()
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
}

func BenchmarkNewID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewID()
	}
}
