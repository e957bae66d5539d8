package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ifuryst/postcraft/pkg/util"
)

var (
	fenceOpenJSON = regexp.MustCompile("(?i)^```json\\s*")
	fenceOpen     = regexp.MustCompile("^```\\s*")
	fenceClose    = regexp.MustCompile("\\s*```$")
)

// Payload is the decoded top-level JSON object returned by the model.
type Payload map[string]any

// Post is one normalized generated post.
type Post struct {
	Number                int      `json:"post_number,omitempty"`
	PostTopic             string   `json:"post_topic"`
	Caption               string   `json:"caption"`
	InstagramVersion      string   `json:"instagram_version"`
	LinkedInVersion       string   `json:"linkedin_version"`
	FacebookVersion       string   `json:"facebook_version"`
	Hashtags              []string `json:"hashtags"`
	CTA                   string   `json:"cta"`
	ImagePrompt           string   `json:"image_prompt"`
	CreativeType          string   `json:"creative_type"`
	TextOverlaySuggestion string   `json:"text_overlay_suggestion"`
	ColorThemeSuggestion  string   `json:"color_theme_suggestion"`
}

// ExtractJSON strips optional markdown fences and decodes the object.
func ExtractJSON(text string) (Payload, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = fenceOpenJSON.ReplaceAllString(cleaned, "")
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	if dec.More() {
		return nil, &ParseError{Text: text, Err: errors.New("unexpected data after JSON value")}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Text: text, Err: fmt.Errorf("expected a JSON object, got %T", raw)}
	}
	return Payload(obj), nil
}

// NormalizePosts turns the generated_posts array into posts with every field
// present and trimmed. Elements that are not objects are skipped.
func NormalizePosts(payload Payload) []Post {
	items, _ := payload["generated_posts"].([]any)

	posts := make([]Post, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		posts = append(posts, Post{
			PostTopic:             field(obj, "post_topic"),
			Caption:               field(obj, "caption"),
			InstagramVersion:      field(obj, "instagram_version"),
			LinkedInVersion:       field(obj, "linkedin_version"),
			FacebookVersion:       field(obj, "facebook_version"),
			Hashtags:              hashtags(obj["hashtags"]),
			CTA:                   field(obj, "cta"),
			ImagePrompt:           field(obj, "image_prompt"),
			CreativeType:          field(obj, "creative_type"),
			TextOverlaySuggestion: field(obj, "text_overlay_suggestion"),
			ColorThemeSuggestion:  field(obj, "color_theme_suggestion"),
		})
	}
	return posts
}

// Normalize trims every string field. Hashtags are left as they are.
func (p Post) Normalize() Post {
	p.PostTopic = strings.TrimSpace(p.PostTopic)
	p.Caption = strings.TrimSpace(p.Caption)
	p.InstagramVersion = strings.TrimSpace(p.InstagramVersion)
	p.LinkedInVersion = strings.TrimSpace(p.LinkedInVersion)
	p.FacebookVersion = strings.TrimSpace(p.FacebookVersion)
	p.CTA = strings.TrimSpace(p.CTA)
	p.ImagePrompt = strings.TrimSpace(p.ImagePrompt)
	p.CreativeType = strings.TrimSpace(p.CreativeType)
	p.TextOverlaySuggestion = strings.TrimSpace(p.TextOverlaySuggestion)
	p.ColorThemeSuggestion = strings.TrimSpace(p.ColorThemeSuggestion)
	if p.Hashtags == nil {
		p.Hashtags = []string{}
	}
	return p
}

// HashtagString renders the hashtags for display.
func (p Post) HashtagString() string {
	return util.FormatHashtags(p.Hashtags)
}

func field(obj map[string]any, key string) string {
	return strings.TrimSpace(stringify(obj[key]))
}

func hashtags(v any) []string {
	switch tags := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(tags))
		for _, tag := range tags {
			out = append(out, stringify(tag))
		}
		return out
	case string:
		return util.ParseTags(tags)
	default:
		return []string{stringify(tags)}
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(val); err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(buf.String())
	}
}
