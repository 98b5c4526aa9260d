package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointRoundTrip(t *testing.T) {
	raw := `{"type":"Point","coordinates":[127.0276,37.4979]}`
	b, err := ParsePoint(raw)
	require.NoError(t, err)
	require.NotEmpty(t, b)

	out, err := ToGeoJSON(b)
	require.NoError(t, err)
	assert.JSONEq(t, raw, out)
}

func TestParsePoint_Empty(t *testing.T) {
	b, err := ParsePoint("")
	require.NoError(t, err)
	assert.Nil(t, b)

	s, err := ToGeoJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestParsePoint_Rejects(t *testing.T) {
	_, err := ParsePoint(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`)
	assert.ErrorIs(t, err, ErrNotPoint)

	_, err = ParsePoint(`{"type":"Point","coordinates":[200,10]}`)
	assert.Error(t, err)

	_, err = ParsePoint(`not json`)
	assert.Error(t, err)
}
