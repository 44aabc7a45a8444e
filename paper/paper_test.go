package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	s, err := Lookup("A4")
	require.NoError(t, err)
	assert.Equal(t, 297.0, s.WidthMM)
	assert.Equal(t, 210.0, s.HeightMM)
	assert.Equal(t, "297mm 210mm", s.CSS())

	_, err = Lookup("letter")
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestResolve(t *testing.T) {
	s, err := Resolve("", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultKey, s.Key)

	s, err = Resolve("custom", 300, 200)
	require.NoError(t, err)
	assert.Equal(t, "300 / 200", s.AspectRatio())

	_, err = Resolve("custom", 0, 200)
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestInches(t *testing.T) {
	s, err := Lookup("a5")
	require.NoError(t, err)
	w, h := s.Inches()
	assert.InDelta(t, 8.2677, w, 0.001)
	assert.InDelta(t, 5.8268, h, 0.001)
}

func TestPresetsOrdered(t *testing.T) {
	ps := Presets()
	require.Len(t, ps, 6)
	assert.Equal(t, "a3", ps[0].Key)
	assert.Equal(t, "b5", ps[5].Key)
}
