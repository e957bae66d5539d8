package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SystemPrompt is sent ahead of every user prompt.
const SystemPrompt = `You are an expert social media strategist and creative director.
Return only valid JSON that matches the requested schema exactly.
Do not include markdown, commentary, or extra keys.`

// ProjectData is the business context handed to the model.
type ProjectData struct {
	BusinessName   string `json:"business_name"`
	Industry       string `json:"industry"`
	TargetAudience string `json:"target_audience"`
	Location       string `json:"location"`
	Goal           string `json:"goal"`
	Tone           string `json:"tone"`
	NumberOfPosts  int    `json:"number_of_posts"`
}

type promptDocument struct {
	Task                string        `json:"task"`
	Requirements        []string      `json:"requirements"`
	ProjectData         ProjectData   `json:"project_data"`
	OutputSchemaExample schemaExample `json:"output_schema_example"`
}

type schemaExample struct {
	GeneratedPosts []schemaPost `json:"generated_posts"`
}

type schemaPost struct {
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

var exampleSchema = schemaExample{
	GeneratedPosts: []schemaPost{{
		PostTopic:             "Specific angle/topic for this post",
		Caption:               "Platform-neutral base caption",
		InstagramVersion:      "Instagram-tailored caption",
		LinkedInVersion:       "LinkedIn-tailored caption",
		FacebookVersion:       "Facebook-tailored caption",
		Hashtags:              []string{"tag1", "tag2", "tag3"},
		CTA:                   "Clear call-to-action",
		ImagePrompt:           "Prompt for image generation",
		CreativeType:          "Carousel | Reel | Static Post",
		TextOverlaySuggestion: "Short visual overlay line",
		ColorThemeSuggestion:  "2-3 color direction",
	}},
}

// BuildUserPrompt renders the instruction document for one project.
func BuildUserPrompt(data ProjectData) string {
	if data.NumberOfPosts <= 0 {
		data.NumberOfPosts = defaultPostCount
	}
	n := data.NumberOfPosts

	doc := promptDocument{
		Task: fmt.Sprintf("Generate exactly %d social media posts.", n),
		Requirements: []string{
			"Tone must match the requested tone.",
			"Each post must be unique and non-repetitive.",
			"Provide platform versions for Instagram, LinkedIn, and Facebook for every post.",
			"Hashtags should be relevant and not spammy.",
			"Each post must include post_topic, caption, instagram_version, linkedin_version, facebook_version, hashtags, cta, image_prompt, creative_type, text_overlay_suggestion, color_theme_suggestion.",
			"image_prompt should be concise and production-ready for text-to-image tools.",
			"creative_type must be one of: Carousel, Reel, Static Post.",
			"Return JSON only with key: generated_posts.",
			fmt.Sprintf("generated_posts must contain exactly %d objects.", n),
		},
		ProjectData:         data,
		OutputSchemaExample: exampleSchema,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Only strings, ints and string slices, so encoding cannot fail.
	_ = enc.Encode(doc)
	return strings.TrimRight(buf.String(), "\n")
}

// fullPrompt joins the system directive and the user prompt.
func fullPrompt(userPrompt string) string {
	return SystemPrompt + "\n\n" + userPrompt
}
