package generator

import (
	"fmt"
	"strings"

	"github.com/ifuryst/postcraft/pkg/util"
)

const offlineColorTheme = "Gold, Ivory, Deep Maroon"

// OfflinePosts builds count template posts from the project data alone.
// It has no failure path and is safe for concurrent use.
func OfflinePosts(data ProjectData, count int) []Post {
	business := orDefault(data.BusinessName, "Your Business")
	industry := orDefault(data.Industry, "your industry")
	audience := orDefault(data.TargetAudience, "your audience")
	tone := orDefault(data.Tone, "Professional")
	goal := orDefault(data.Goal, "Engagement")

	if count < 0 {
		count = 0
	}

	posts := make([]Post, 0, count)
	for i := 1; i <= count; i++ {
		topic := fmt.Sprintf("%s Value Angle %d", industry, i)
		caption := fmt.Sprintf("%s helps %s in %s. This %s post focuses on %s outcomes.",
			business, audience, industry, strings.ToLower(tone), strings.ToLower(goal))

		posts = append(posts, Post{
			PostTopic:        topic,
			Caption:          caption,
			InstagramVersion: caption + " Save this for your next purchase decision.",
			LinkedInVersion:  caption + " Built for measurable business value.",
			FacebookVersion:  caption + " Share with someone who needs this.",
			Hashtags: []string{
				util.RemoveSpaces(industry),
				util.RemoveSpaces(business),
				"Marketing",
				"Growth",
			},
			CTA:                   "Message us to get started today.",
			ImagePrompt:           fmt.Sprintf("%s %s premium marketing visual", business, industry),
			CreativeType:          "Static Post",
			TextOverlaySuggestion: fmt.Sprintf("%s: %s", business, topic),
			ColorThemeSuggestion:  offlineColorTheme,
		})
	}
	return posts
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
