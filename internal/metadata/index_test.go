package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCompile(t *testing.T) {
	ix := New()
	ix.Add(0, map[string]string{"type": "article", "lang": "en"})
	ix.Add(1, map[string]string{"type": "article", "lang": "de"})
	ix.Add(2, map[string]string{"type": "recipe", "lang": "en"})

	tests := []struct {
		name   string
		filter map[string]string
		want   []uint32
	}{
		{"SinglePair", map[string]string{"type": "article"}, []uint32{0, 1}},
		{"Intersection", map[string]string{"type": "article", "lang": "en"}, []uint32{0}},
		{"UnknownValue", map[string]string{"type": "video"}, []uint32{}},
		{"UnknownKey", map[string]string{"author": "x"}, []uint32{}},
		{"Disjoint", map[string]string{"type": "recipe", "lang": "de"}, []uint32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := ix.Compile(tt.filter)
			require.True(t, ok)
			assert.Equal(t, tt.want, rows.ToArray())
		})
	}
}

func TestIndexCompileEmptyFilter(t *testing.T) {
	ix := New()
	ix.Add(0, map[string]string{"type": "article"})

	rows, ok := ix.Compile(nil)
	assert.False(t, ok)
	assert.Nil(t, rows)
}

func TestIndexCompileReturnsCopy(t *testing.T) {
	ix := New()
	ix.Add(0, map[string]string{"type": "article"})

	rows, _ := ix.Compile(map[string]string{"type": "article"})
	rows.Add(99)

	assert.Equal(t, uint64(1), ix.Cardinality("type", "article"))
}

func TestIndexRemoveAndUpdate(t *testing.T) {
	ix := New()
	ix.Add(3, map[string]string{"type": "article"})
	ix.Update(3, map[string]string{"type": "article"}, map[string]string{"type": "recipe"})

	assert.Equal(t, uint64(0), ix.Cardinality("type", "article"))
	assert.Equal(t, uint64(1), ix.Cardinality("type", "recipe"))

	ix.Remove(3, map[string]string{"type": "recipe"})
	assert.Equal(t, 0, ix.Keys())

	// Removing unknown pairs is a no-op.
	ix.Remove(3, map[string]string{"missing": "x"})
	assert.Equal(t, 0, ix.Keys())
}
