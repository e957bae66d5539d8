package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ifuryst/postcraft/internal/models"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectStore persists projects and their generated posts.
type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// CreateWithPosts inserts the project and all of its posts in one
// transaction. On success project.ID, project.Posts and every post's
// ProjectID are set.
func (s *ProjectStore) CreateWithPosts(ctx context.Context, project *models.Project, posts []models.GeneratedPost) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		for i := range posts {
			posts[i].ProjectID = project.ID
		}
		if len(posts) > 0 {
			if err := tx.Create(&posts).Error; err != nil {
				return fmt.Errorf("failed to create posts: %w", err)
			}
		}

		project.Posts = posts
		return nil
	})
}

// Get loads a project with its posts ordered by post number.
func (s *ProjectStore) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("post_number ASC")
		}).
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// List returns every project with its post count, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]models.ProjectSummary, error) {
	summaries := []models.ProjectSummary{}
	err := s.db.WithContext(ctx).
		Table("projects").
		Select(`projects.id, projects.business_name, projects.industry, projects.location,
			projects.goal, projects.tone, projects.number_of_posts, projects.created_at,
			COUNT(generated_posts.id) AS post_count`).
		Joins("LEFT JOIN generated_posts ON generated_posts.project_id = projects.id").
		Group("projects.id").
		Order("projects.created_at DESC, projects.id DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return summaries, nil
}

// Delete removes a project. Its posts go with it through the foreign key.
func (s *ProjectStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
