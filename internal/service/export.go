package service

import (
	"fmt"
	"strings"

	"github.com/ifuryst/postcraft/internal/models"
)

// ExportFilename is the attachment name for a project's text export.
func ExportFilename(id uint) string {
	return fmt.Sprintf("project_%d_posts.txt", id)
}

// RenderExport writes the project header followed by every post as plain text.
func RenderExport(project *models.Project, posts []models.GeneratedPost) string {
	lines := []string{
		"Project: " + project.BusinessName,
		"Industry: " + project.Industry,
		"Target Audience: " + project.TargetAudience,
		"Location: " + project.Location,
		"Goal: " + project.Goal,
		"Tone: " + project.Tone,
		"",
	}

	for _, post := range posts {
		lines = append(lines,
			fmt.Sprintf("Post %d: %s", post.PostNumber, post.PostTopic),
			"Caption: "+post.Caption,
			"Instagram: "+post.InstagramVersion,
			"LinkedIn: "+post.LinkedInVersion,
			"Facebook: "+post.FacebookVersion,
			"Hashtags: "+post.HashtagString(),
			"CTA: "+post.CTA,
			"Image Prompt: "+post.ImagePrompt,
			"Creative Type: "+post.CreativeType,
			"Text Overlay: "+post.TextOverlaySuggestion,
			"Color Theme: "+post.ColorThemeSuggestion,
			"Suggested Publish Date: "+post.PublishDate(),
			"",
		)
	}

	return strings.Join(lines, "\n")
}
