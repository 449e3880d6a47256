package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	var single TagList
	require.NoError(t, json.Unmarshal([]byte(`"go"`), &single))
	assert.Equal(t, TagList{"go"}, single)

	var many TagList
	require.NoError(t, json.Unmarshal([]byte(`["go","web"]`), &many))
	assert.Equal(t, TagList{"go", "web"}, many)

	var bad TagList
	assert.Error(t, json.Unmarshal([]byte(`42`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestTagListFromValue(t *testing.T) {
	got, ok := TagListFromValue("go")
	assert.True(t, ok)
	assert.Equal(t, TagList{"go"}, got)

	got, ok = TagListFromValue([]any{"go", "web"})
	assert.True(t, ok)
	assert.Equal(t, TagList{"go", "web"}, got)

	// non-string elements surface as empty strings for the caller to reject
	got, ok = TagListFromValue([]any{"go", 7.0})
	assert.True(t, ok)
	assert.Equal(t, TagList{"go", ""}, got)

	_, ok = TagListFromValue(42.0)
	assert.False(t, ok)
	_, ok = TagListFromValue(nil)
	assert.False(t, ok)
}

func TestTagList_Trimmed(t *testing.T) {
	assert.Equal(t, TagList{"a", "b"}, TagList{" a ", "b "}.Trimmed())
}
