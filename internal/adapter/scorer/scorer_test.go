package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngramlp/internal/adapter/converter"
	"ngramlp/internal/domain"
)

func quadgrams(t *testing.T) []domain.Record {
	t.Helper()
	table, err := converter.ParseEntries([]string{"TION 50", "ATIO 30", "NATI 20"}, false)
	require.NoError(t, err)
	records, err := converter.LogProbs(table, converter.BaseE)
	require.NoError(t, err)
	return records
}

func TestScore_KnownWindows(t *testing.T) {
	s, err := New(quadgrams(t), 4, -10, true)
	require.NoError(t, err)

	// NATION -> NATI, ATIO, TION
	want := math.Log(0.2) + math.Log(0.3) + math.Log(0.5)
	assert.InDelta(t, want, s.Score("nation"), 1e-12)
}

func TestScore_UnseenUsesFloor(t *testing.T) {
	s, err := New(quadgrams(t), 4, -10, true)
	require.NoError(t, err)

	assert.InDelta(t, -20.0, s.Score("qqqqq"), 1e-12)
	assert.InDelta(t, math.Log(0.5)-10, s.Score("tion x"), 1e-12)
}

func TestScore_ShortText(t *testing.T) {
	s, err := New(quadgrams(t), 4, -10, true)
	require.NoError(t, err)

	assert.True(t, math.IsInf(s.Score("ab c"), -1))
}

func TestScore_PrefersTableLanguage(t *testing.T) {
	s, err := New(quadgrams(t), 4, DefaultFloor(100, converter.BaseE), true)
	require.NoError(t, err)

	assert.Greater(t, s.Score("NATION"), s.Score("XKCDQZ"))
}

func TestNormalize(t *testing.T) {
	s, err := New(nil, 2, -1, true)
	require.NoError(t, err)
	assert.Equal(t, "HELLOWRLD", s.Normalize("Hello, wörld!"))

	raw, err := New(nil, 2, -1, false)
	require.NoError(t, err)
	assert.Equal(t, "a b", raw.Normalize("a b"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, 0, -1, true)
	assert.ErrorIs(t, err, ErrMixedOrder)

	_, err = New(nil, 4, 1, true)
	assert.Error(t, err)
}

func TestDefaultFloor(t *testing.T) {
	assert.InDelta(t, math.Log(0.0001), DefaultFloor(100, converter.BaseE), 1e-12)
	assert.InDelta(t, -4.0, DefaultFloor(100, converter.Base10), 1e-12)
	assert.True(t, math.IsInf(DefaultFloor(0, converter.BaseE), -1))
}
