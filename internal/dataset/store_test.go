package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"f500cli/pkg/contracts/domain"
)

func TestFingerprint_DeterministicAndDistinct(t *testing.T) {
	a := Fingerprint([]byte("NAME,REVENUES\nAcme,100\n"))
	b := Fingerprint([]byte("NAME,REVENUES\nAcme,100\n"))
	c := Fingerprint([]byte("NAME,REVENUES\nBeta,200\n"))

	assert.Equal(t, a, b, "identical bytes must share a fingerprint")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestStore_PutGetInvalidate(t *testing.T) {
	store := NewStore(4)

	ds := &domain.Dataset{ID: "abc123", Companies: []domain.Company{{Name: "Acme"}}}
	store.Put(ds)

	got, ok := store.Get("abc123")
	require.True(t, ok)
	assert.Same(t, ds, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Invalidate("abc123")
	_, ok = store.Get("abc123")
	assert.False(t, ok)
}

func TestStore_EvictsOldestWhenFull(t *testing.T) {
	store := NewStore(2)

	store.Put(&domain.Dataset{ID: "first"})
	store.Put(&domain.Dataset{ID: "second"})
	store.Put(&domain.Dataset{ID: "third"})

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get("first")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = store.Get("third")
	assert.True(t, ok)
}

func TestStore_ZeroSizeStoresNothing(t *testing.T) {
	store := NewStore(0)
	store.Put(&domain.Dataset{ID: "x"})
	assert.Equal(t, 0, store.Len())
}

func TestStore_Stats(t *testing.T) {
	store := NewStore(4)
	store.Put(&domain.Dataset{ID: "x"})

	store.Get("x")
	store.Get("x")
	store.Get("missing")

	stats := store.Stats()
	assert.Equal(t, 1, stats["entries"])
	assert.Equal(t, int64(2), stats["hit_count"])
	assert.Equal(t, int64(1), stats["miss_count"])
	assert.InDelta(t, 2.0/3.0, stats["hit_ratio"].(float64), 1e-9)
}
