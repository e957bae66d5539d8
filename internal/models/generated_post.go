package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/ifuryst/postcraft/pkg/util"
)

// Creative types a post may use.
const (
	CreativeCarousel   = "Carousel"
	CreativeReel       = "Reel"
	CreativeStaticPost = "Static Post"
)

// StringArray represents a PostgreSQL text[] type
type StringArray []string

// Scan implements the sql.Scanner interface
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = parsePostgresArray(v)
		return nil
	case []byte:
		// Try to parse as JSON first
		var arr []string
		if err := json.Unmarshal(v, &arr); err == nil {
			*s = arr
			return nil
		}
		return s.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringArray) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "{}", nil
	}

	quoted := make([]string, len(s))
	for i, v := range s {
		escaped := strings.ReplaceAll(v, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		quoted[i] = `"` + escaped + `"`
	}

	return "{" + strings.Join(quoted, ",") + "}", nil
}

// parsePostgresArray handles the {a,"b c","d\"e"} text form of a 1-d array.
func parsePostgresArray(v string) StringArray {
	v = strings.TrimSpace(v)
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		if v == "" {
			return StringArray{}
		}
		return StringArray{v}
	}
	body := v[1 : len(v)-1]
	result := StringArray{}
	if body == "" {
		return result
	}

	var (
		cur     strings.Builder
		quoted  bool
		escaped bool
	)
	for _, r := range body {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			result = append(result, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	return append(result, cur.String())
}

// GeneratedPost is one post of a project's batch. Rows are written with the
// project and never modified.
type GeneratedPost struct {
	ID                    uint           `gorm:"primaryKey" json:"id"`
	ProjectID             uint           `gorm:"not null;index;uniqueIndex:idx_project_post_number,priority:1" json:"project_id"`
	PostNumber            int            `gorm:"not null;uniqueIndex:idx_project_post_number,priority:2" json:"post_number"`
	PostTopic             string         `gorm:"size:255;not null" json:"post_topic"`
	Caption               string         `gorm:"type:text;not null" json:"caption"`
	InstagramVersion      string         `gorm:"type:text;not null" json:"instagram_version"`
	LinkedInVersion       string         `gorm:"column:linkedin_version;type:text;not null" json:"linkedin_version"`
	FacebookVersion       string         `gorm:"type:text;not null" json:"facebook_version"`
	Hashtags              StringArray    `gorm:"type:text[]" json:"hashtags"`
	CTA                   string         `gorm:"column:cta;size:500;not null" json:"cta"`
	ImagePrompt           string         `gorm:"type:text;not null" json:"image_prompt"`
	CreativeType          string         `gorm:"size:100;not null" json:"creative_type"`
	TextOverlaySuggestion string         `gorm:"size:255;not null" json:"text_overlay_suggestion"`
	ColorThemeSuggestion  string         `gorm:"size:255;not null" json:"color_theme_suggestion"`
	PublishAt             datatypes.Date `json:"publish_at"`
	CreatedAt             time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// HashtagString renders the hashtags the way they are published.
func (p GeneratedPost) HashtagString() string {
	return util.FormatHashtags(p.Hashtags)
}

// PublishDate returns publish_at as a calendar date string.
func (p GeneratedPost) PublishDate() string {
	t := time.Time(p.PublishAt)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (p GeneratedPost) String() string {
	return fmt.Sprintf("Post %d for Project #%d", p.PostNumber, p.ProjectID)
}
