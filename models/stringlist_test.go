package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListScanJSONList(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(`["Red","Green"]`))
	assert.Equal(t, StringList{"Red", "Green"}, l)
}

func TestStringListScanLegacyScalar(t *testing.T) {
	// Early records stored a single color as a bare JSON string
	var l StringList
	require.NoError(t, l.Scan(`"Red"`))
	assert.Equal(t, StringList{"Red"}, l)
}

func TestStringListScanPlainText(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan("Red"))
	assert.Equal(t, StringList{"Red"}, l)
}

func TestStringListScanNil(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)
}

func TestStringListScanBytes(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["Blue"]`)))
	assert.Equal(t, StringList{"Blue"}, l)
}

func TestStringListValue(t *testing.T) {
	v, err := StringList{"Red", "Green"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Red","Green"]`, v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)
}

func TestStringListContains(t *testing.T) {
	l := StringList{"a", "b"}
	assert.True(t, l.Contains("a"))
	assert.False(t, l.Contains("c"))
}
