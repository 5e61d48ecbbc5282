package redis_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "studyhub:item:blog:42", ItemKey("blog", 42))
	assert.Equal(t, "studyhub:page:forum_comment:7:3", PageKey("forum_comment", 7, 3))
	assert.Equal(t, "studyhub:page:forum_comment:7:*", PagePattern("forum_comment", 7))
	assert.Equal(t, "studyhub:cursor:forum_comment:7", CursorKey("forum_comment", 7))
	assert.Equal(t, "studyhub:ai:history:9", AiHistoryKey(9))
	assert.Equal(t, "studyhub:exercise:grades", KeyGrades)
}

func TestPagePatternDoesNotMatchSiblingParents(t *testing.T) {
	// Parent 5 and parent 55 share a string prefix; the pattern's trailing
	// separator keeps their namespaces apart.
	assert.NotEqual(t, PagePattern("blog", 5), PagePattern("blog", 55))
	assert.Contains(t, PageKey("blog", 55, 1), "blog:55:")
	assert.NotContains(t, PageKey("blog", 55, 1), "blog:5:")
}

func TestEnvelopeRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	raw, err := EncodeJSON(payload{Name: "x"})
	require.NoError(t, err)
	assert.Contains(t, raw, `"v":1`)

	var decoded payload
	require.True(t, DecodeJSON(raw, &decoded))
	assert.Equal(t, "x", decoded.Name)
}

func TestEnvelopeRejectsForeignVersionsAndGarbage(t *testing.T) {
	var out map[string]interface{}
	assert.False(t, DecodeJSON(`{"v":2,"data":{}}`, &out))
	assert.False(t, DecodeJSON("not json", &out))
	assert.False(t, DecodeJSON(`{"data":{}}`, &out))
}

func TestTTLDefaultsWithoutConfig(t *testing.T) {
	assert.Equal(t, defaultItemTTL, ItemTTL())
	assert.Equal(t, defaultPageTTL, PageTTL())
	assert.Equal(t, defaultHistoryTTL, HistoryTTL())
	assert.Equal(t, defaultAggregateTTL, AggregateTTL())
	assert.Equal(t, defaultPageSize, PageSize())
}
