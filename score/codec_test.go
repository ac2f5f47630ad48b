package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFormat(t *testing.T) {
	data, err := Encode(Table{{"ABC", 12}, {"XYZ", 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"initials":"ABC","score":12},{"initials":"XYZ","score":3}]`, string(data))

	empty, err := Encode(Table{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}

// TestDecodeSkipsMalformedRows verifies bad rows are dropped without failing the table
func TestDecodeSkipsMalformedRows(t *testing.T) {
	data := []byte(`[
		{"initials":"ABC","score":12},
		{"initials":7,"score":3},
		{"score":4},
		"junk",
		{"initials":"DEF","score":"9"},
		{"initials":"GHI","score":2,"extra":true}
	]`)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Table{{"ABC", 12}, {"GHI", 2}}, got)
}

func TestDecodeRejectsNonTables(t *testing.T) {
	for _, raw := range []string{`{"initials":"ABC"}`, `not json`, `42`, ``} {
		_, err := Decode([]byte(raw))
		assert.Error(t, err, "input %q", raw)
	}
}
