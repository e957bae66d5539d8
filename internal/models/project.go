package models

import (
	"math"
	"time"
)

const (
	DefaultNumberOfPosts = 5
	MinNumberOfPosts     = 1
	MaxNumberOfPosts     = 10
	DefaultTemperature   = 0.30
)

// Goals and tones accepted by the project form.
var (
	Goals = []string{"Leads", "Branding", "Sales", "Engagement"}
	Tones = []string{"Professional", "Friendly", "Bold", "Educational"}
)

// Project is the business description a batch of posts is generated from.
// It is written once and never updated.
type Project struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	BusinessName   string          `gorm:"size:255;not null" json:"business_name"`
	Industry       string          `gorm:"size:255;not null" json:"industry"`
	TargetAudience string          `gorm:"type:text;not null" json:"target_audience"`
	Location       string          `gorm:"size:255;not null;default:''" json:"location"`
	Goal           string          `gorm:"size:50;not null;default:'Engagement'" json:"goal"`
	Tone           string          `gorm:"size:50;not null;default:'Professional'" json:"tone"`
	NumberOfPosts  int             `gorm:"not null;default:5" json:"number_of_posts"`
	Temperature    float64         `gorm:"type:numeric(3,2);not null;default:0.30" json:"temperature"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Posts          []GeneratedPost `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// ProjectSummary is a listing row with the number of stored posts.
type ProjectSummary struct {
	ID            uint      `json:"id"`
	BusinessName  string    `json:"business_name"`
	Industry      string    `json:"industry"`
	Location      string    `json:"location"`
	Goal          string    `json:"goal"`
	Tone          string    `json:"tone"`
	NumberOfPosts int       `json:"number_of_posts"`
	CreatedAt     time.Time `json:"created_at"`
	PostCount     int64     `json:"post_count"`
}

// ProjectInput is the create-project request.
type ProjectInput struct {
	BusinessName   string   `json:"business_name" binding:"required,max=255"`
	Industry       string   `json:"industry" binding:"required,max=255"`
	TargetAudience string   `json:"target_audience" binding:"required"`
	Location       string   `json:"location" binding:"max=255"`
	Goal           string   `json:"goal" binding:"omitempty,oneof=Leads Branding Sales Engagement"`
	Tone           string   `json:"tone" binding:"omitempty,oneof=Professional Friendly Bold Educational"`
	NumberOfPosts  *int     `json:"number_of_posts" binding:"omitempty,min=1,max=10"`
	Temperature    *float64 `json:"temperature" binding:"omitempty,min=0,max=1"`
}

// Normalize fills defaults and forces the numeric fields into range.
func (in ProjectInput) Normalize() ProjectInput {
	if in.Goal == "" {
		in.Goal = "Engagement"
	}
	if in.Tone == "" {
		in.Tone = "Professional"
	}

	count := DefaultNumberOfPosts
	if in.NumberOfPosts != nil {
		count = ClampPostCount(*in.NumberOfPosts)
	}
	in.NumberOfPosts = &count

	temperature := DefaultTemperature
	if in.Temperature != nil {
		temperature = ClampTemperature(*in.Temperature)
	}
	temperature = math.Round(temperature*100) / 100
	in.Temperature = &temperature

	return in
}

// Project builds the record for a normalized input.
func (in ProjectInput) Project() Project {
	n := in.Normalize()
	return Project{
		BusinessName:   n.BusinessName,
		Industry:       n.Industry,
		TargetAudience: n.TargetAudience,
		Location:       n.Location,
		Goal:           n.Goal,
		Tone:           n.Tone,
		NumberOfPosts:  *n.NumberOfPosts,
		Temperature:    *n.Temperature,
	}
}

func ClampPostCount(n int) int {
	if n < MinNumberOfPosts {
		return MinNumberOfPosts
	}
	if n > MaxNumberOfPosts {
		return MaxNumberOfPosts
	}
	return n
}

func ClampTemperature(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (p Project) String() string {
	return p.BusinessName + " (" + p.Industry + ")"
}
