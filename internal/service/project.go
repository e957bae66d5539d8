package service

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ifuryst/postcraft/internal/generator"
	"github.com/ifuryst/postcraft/internal/models"
)

// PostGenerator produces a batch of posts for one project.
type PostGenerator interface {
	Generate(ctx context.Context, data generator.ProjectData, temperature float64) ([]generator.Post, error)
}

// ProjectRepository is the storage ProjectService needs.
type ProjectRepository interface {
	CreateWithPosts(ctx context.Context, project *models.Project, posts []models.GeneratedPost) error
	Get(ctx context.Context, id uint) (*models.Project, error)
	List(ctx context.Context) ([]models.ProjectSummary, error)
	Delete(ctx context.Context, id uint) error
}

// ProjectService runs generation for new projects and serves stored ones.
type ProjectService struct {
	generator PostGenerator
	store     ProjectRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewProjectService(gen PostGenerator, store ProjectRepository, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		generator: gen,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for created_at and publish dates.
func (s *ProjectService) WithClock(now func() time.Time) *ProjectService {
	s.now = now
	return s
}

// Create generates posts for the input and stores the project with them.
// Generation errors are returned as is and nothing is written.
func (s *ProjectService) Create(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	project := input.Project()

	generated, err := s.generator.Generate(ctx, ProjectData(&project), project.Temperature)
	if err != nil {
		s.logger.Warn("Generation failed",
			zap.String("business", project.BusinessName),
			zap.Error(err))
		return nil, err
	}

	now := s.now()
	project.CreatedAt = now
	posts := BuildPosts(generated, now)

	if err := s.store.CreateWithPosts(ctx, &project, posts); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.Uint("project_id", project.ID),
		zap.String("business", project.BusinessName),
		zap.Int("posts", len(posts)))
	return &project, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*models.Project, error) {
	return s.store.Get(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]models.ProjectSummary, error) {
	return s.store.List(ctx)
}

// Delete removes the project and returns what was deleted.
func (s *ProjectService) Delete(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("Project deleted",
		zap.Uint("project_id", id),
		zap.String("business", project.BusinessName))
	return project, nil
}

// Export returns the attachment filename and text body for a project.
func (s *ProjectService) Export(ctx context.Context, id uint) (string, string, error) {
	project, err := s.store.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return ExportFilename(project.ID), RenderExport(project, project.Posts), nil
}

// ProjectData is the generator's view of a project.
func ProjectData(p *models.Project) generator.ProjectData {
	return generator.ProjectData{
		BusinessName:   p.BusinessName,
		Industry:       p.Industry,
		TargetAudience: p.TargetAudience,
		Location:       p.Location,
		Goal:           p.Goal,
		Tone:           p.Tone,
		NumberOfPosts:  p.NumberOfPosts,
	}
}

// BuildPosts turns generated posts into rows. Post n is numbered n and
// scheduled n-1 days after now.
func BuildPosts(generated []generator.Post, now time.Time) []models.GeneratedPost {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	posts := make([]models.GeneratedPost, 0, len(generated))
	for i, g := range generated {
		hashtags := models.StringArray{}
		if g.Hashtags != nil {
			hashtags = models.StringArray(g.Hashtags)
		}
		posts = append(posts, models.GeneratedPost{
			PostNumber:            i + 1,
			PostTopic:             truncate(g.PostTopic, 255),
			Caption:               g.Caption,
			InstagramVersion:      g.InstagramVersion,
			LinkedInVersion:       g.LinkedInVersion,
			FacebookVersion:       g.FacebookVersion,
			Hashtags:              hashtags,
			CTA:                   truncate(g.CTA, 500),
			ImagePrompt:           g.ImagePrompt,
			CreativeType:          truncate(g.CreativeType, 100),
			TextOverlaySuggestion: truncate(g.TextOverlaySuggestion, 255),
			ColorThemeSuggestion:  truncate(g.ColorThemeSuggestion, 255),
			PublishAt:             datatypes.Date(start.AddDate(0, 0, i)),
			CreatedAt:             now,
		})
	}
	return posts
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
