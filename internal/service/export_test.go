package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/ifuryst/postcraft/internal/models"
)

func TestRenderExport(t *testing.T) {
	project := &models.Project{
		ID:             7,
		BusinessName:   "Acme",
		Industry:       "Hardware",
		TargetAudience: "builders",
		Location:       "Austin",
		Goal:           "Sales",
		Tone:           "Bold",
	}
	posts := []models.GeneratedPost{{
		PostNumber:            1,
		PostTopic:             "Launch",
		Caption:               "New drills",
		InstagramVersion:      "IG",
		LinkedInVersion:       "LI",
		FacebookVersion:       "FB",
		Hashtags:              models.StringArray{"tools", "#diy"},
		CTA:                   "Shop now",
		ImagePrompt:           "A drill",
		CreativeType:          models.CreativeStaticPost,
		TextOverlaySuggestion: "Power up",
		ColorThemeSuggestion:  "Red",
		PublishAt:             datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
	}}

	want := "Project: Acme\n" +
		"Industry: Hardware\n" +
		"Target Audience: builders\n" +
		"Location: Austin\n" +
		"Goal: Sales\n" +
		"Tone: Bold\n" +
		"\n" +
		"Post 1: Launch\n" +
		"Caption: New drills\n" +
		"Instagram: IG\n" +
		"LinkedIn: LI\n" +
		"Facebook: FB\n" +
		"Hashtags: #tools #diy\n" +
		"CTA: Shop now\n" +
		"Image Prompt: A drill\n" +
		"Creative Type: Static Post\n" +
		"Text Overlay: Power up\n" +
		"Color Theme: Red\n" +
		"Suggested Publish Date: 2024-05-01\n"

	assert.Equal(t, want, RenderExport(project, posts))
	assert.Equal(t, "project_7_posts.txt", ExportFilename(project.ID))
}

func TestRenderExportNoPosts(t *testing.T) {
	body := RenderExport(&models.Project{BusinessName: "Acme"}, nil)
	assert.Equal(t, "Project: Acme\nIndustry: \nTarget Audience: \nLocation: \nGoal: \nTone: \n", body)
}
