package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPost = `{
  "post_topic": "Morning rituals",
  "caption": "Start slow.",
  "instagram_version": "Start slow. ☕",
  "linkedin_version": "Rituals drive focus.",
  "facebook_version": "Tag a friend.",
  "hashtags": ["coffee", "#morning"],
  "cta": "Visit us today",
  "image_prompt": "latte art on oak table",
  "creative_type": "Reel",
  "text_overlay_suggestion": "Slow mornings",
  "color_theme_suggestion": "Cream, Brown"
}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain", input: `{"generated_posts": []}`},
		{name: "json fence", input: "```json\n{\"generated_posts\": []}\n```"},
		{name: "upper case fence", input: "```JSON {\"generated_posts\": []} ```"},
		{name: "bare fence", input: "```\n{\"generated_posts\": []}\n```"},
		{name: "surrounding whitespace", input: "\n\n  {\"generated_posts\": []}  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ExtractJSON(tt.input)
			require.NoError(t, err)
			assert.Contains(t, payload, "generated_posts")
		})
	}
}

func TestExtractJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "Sorry, I cannot help with that."},
		{name: "truncated", input: `{"generated_posts": [{"caption": "a"`},
		{name: "array top level", input: `[1, 2]`},
		{name: "trailing garbage", input: `{"a": 1} and more`},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.input)
			require.Error(t, err)
			var perr *ParseError
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestNormalizePostsRoundTrip(t *testing.T) {
	payload, err := ExtractJSON(`{"generated_posts": [` + fullPost + `]}`)
	require.NoError(t, err)

	posts := NormalizePosts(payload)
	require.Len(t, posts, 1)
	assert.Equal(t, Post{
		PostTopic:             "Morning rituals",
		Caption:               "Start slow.",
		InstagramVersion:      "Start slow. ☕",
		LinkedInVersion:       "Rituals drive focus.",
		FacebookVersion:       "Tag a friend.",
		Hashtags:              []string{"coffee", "#morning"},
		CTA:                   "Visit us today",
		ImagePrompt:           "latte art on oak table",
		CreativeType:          "Reel",
		TextOverlaySuggestion: "Slow mornings",
		ColorThemeSuggestion:  "Cream, Brown",
	}, posts[0])
}

func TestNormalizePostsDefaultsAndTrims(t *testing.T) {
	payload, err := ExtractJSON(`{"generated_posts": [
		{"caption": "  hello  ", "extra": "dropped", "cta": null, "hashtags": "a, b"},
		"not an object",
		{"post_topic": 7, "hashtags": [1, "x", true]}
	]}`)
	require.NoError(t, err)

	posts := NormalizePosts(payload)
	require.Len(t, posts, 2)

	assert.Equal(t, "hello", posts[0].Caption)
	assert.Equal(t, "", posts[0].CTA)
	assert.Equal(t, "", posts[0].PostTopic)
	assert.Equal(t, []string{"a", "b"}, posts[0].Hashtags)

	assert.Equal(t, "7", posts[1].PostTopic)
	assert.Equal(t, []string{"1", "x", "true"}, posts[1].Hashtags)
	assert.Equal(t, []string{}, NormalizePosts(Payload{"generated_posts": []any{map[string]any{}}})[0].Hashtags)
}

func TestNormalizePostsMissingArray(t *testing.T) {
	assert.Empty(t, NormalizePosts(Payload{}))
	assert.Empty(t, NormalizePosts(Payload{"generated_posts": "nope"}))
	assert.Empty(t, NormalizePosts(nil))
}

func TestNormalizePostsIdempotent(t *testing.T) {
	payload, err := ExtractJSON(`{"generated_posts": [{"caption": " padded ", "hashtags": [" spaced "]}, ` + fullPost + `]}`)
	require.NoError(t, err)
	first := NormalizePosts(payload)

	encoded, err := json.Marshal(map[string]any{"generated_posts": first})
	require.NoError(t, err)
	again, err := ExtractJSON(string(encoded))
	require.NoError(t, err)

	assert.Equal(t, first, NormalizePosts(again))

	for _, p := range first {
		assert.Equal(t, p, p.Normalize())
	}
}

func TestPostHashtagString(t *testing.T) {
	p := Post{Hashtags: []string{"growth", "#Sales", ""}}
	assert.Equal(t, "#growth #Sales", p.HashtagString())
}
