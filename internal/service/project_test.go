package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifuryst/postcraft/internal/generator"
	"github.com/ifuryst/postcraft/internal/models"
)

type fakeGenerator struct {
	posts []generator.Post
	err   error

	gotData        generator.ProjectData
	gotTemperature float64
	calls          int
}

func (f *fakeGenerator) Generate(_ context.Context, data generator.ProjectData, temperature float64) ([]generator.Post, error) {
	f.calls++
	f.gotData = data
	f.gotTemperature = temperature
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

// memoryStore keeps projects in a map.
type memoryStore struct {
	mu       sync.Mutex
	nextID   uint
	projects map[uint]*models.Project
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{projects: map[uint]*models.Project{}}
}

func (m *memoryStore) CreateWithPosts(_ context.Context, project *models.Project, posts []models.GeneratedPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.nextID++
	project.ID = m.nextID
	for i := range posts {
		posts[i].ProjectID = project.ID
	}
	project.Posts = posts
	stored := *project
	m.projects[project.ID] = &stored
	return nil
}

func (m *memoryStore) Get(_ context.Context, id uint) (*models.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryStore) List(_ context.Context) ([]models.ProjectSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ProjectSummary{}
	for _, p := range m.projects {
		out = append(out, models.ProjectSummary{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			CreatedAt:    p.CreatedAt,
			PostCount:    int64(len(p.Posts)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(m.projects, id)
	return nil
}

func createInput(count int) models.ProjectInput {
	temperature := 0.456
	return models.ProjectInput{
		BusinessName:   "Brew & Co",
		Industry:       "Specialty Coffee",
		TargetAudience: "remote workers",
		Location:       "Lisbon",
		Goal:           "Leads",
		Tone:           "Friendly",
		NumberOfPosts:  &count,
		Temperature:    &temperature,
	}
}

func generatedPosts(n int) []generator.Post {
	posts := make([]generator.Post, n)
	for i := range posts {
		posts[i] = generator.Post{
			Number:       i + 1,
			PostTopic:    "Topic",
			Caption:      "Caption",
			Hashtags:     []string{"#coffee", "lisbon"},
			CTA:          "Visit us",
			CreativeType: models.CreativeReel,
		}
	}
	return posts
}

var fixedNow = time.Date(2024, 3, 30, 18, 45, 0, 0, time.UTC)

func TestCreatePersistsProjectAndPosts(t *testing.T) {
	gen := &fakeGenerator{posts: generatedPosts(3)}
	store := newMemoryStore()
	svc := NewProjectService(gen, store, nil).WithClock(func() time.Time { return fixedNow })

	project, err := svc.Create(context.Background(), createInput(3))
	require.NoError(t, err)

	assert.Equal(t, uint(1), project.ID)
	assert.Equal(t, 3, project.NumberOfPosts)
	assert.Equal(t, 0.46, project.Temperature)
	assert.Equal(t, fixedNow, project.CreatedAt)
	require.Len(t, project.Posts, 3)

	assert.Equal(t, "Brew & Co", gen.gotData.BusinessName)
	assert.Equal(t, 3, gen.gotData.NumberOfPosts)
	assert.Equal(t, 0.46, gen.gotTemperature)

	wantDates := []string{"2024-03-30", "2024-03-31", "2024-04-01"}
	for i, post := range project.Posts {
		assert.Equal(t, i+1, post.PostNumber)
		assert.Equal(t, uint(1), post.ProjectID)
		assert.Equal(t, wantDates[i], post.PublishDate())
		assert.Equal(t, "#coffee #lisbon", post.HashtagString())
	}

	stored, err := store.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Posts, 3)
}

func TestCreateAppliesDefaults(t *testing.T) {
	gen := &fakeGenerator{posts: generatedPosts(5)}
	svc := NewProjectService(gen, newMemoryStore(), nil)

	project, err := svc.Create(context.Background(), models.ProjectInput{
		BusinessName:   "Acme",
		Industry:       "Hardware",
		TargetAudience: "builders",
	})
	require.NoError(t, err)

	assert.Equal(t, "Engagement", project.Goal)
	assert.Equal(t, "Professional", project.Tone)
	assert.Equal(t, 5, project.NumberOfPosts)
	assert.Equal(t, 0.30, gen.gotTemperature)
}

func TestCreateGenerationErrorPersistsNothing(t *testing.T) {
	cases := map[string]error{
		"quota":         &generator.QuotaError{Err: errors.New("429")},
		"configuration": &generator.ConfigurationError{Message: "missing key"},
		"empty":         generator.ErrEmptyResult,
	}
	for name, genErr := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemoryStore()
			svc := NewProjectService(&fakeGenerator{err: genErr}, store, nil)

			project, err := svc.Create(context.Background(), createInput(2))
			assert.Nil(t, project)
			assert.ErrorIs(t, err, genErr)

			summaries, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, summaries)
		})
	}
}

func TestCreateStoreError(t *testing.T) {
	store := newMemoryStore()
	store.failWith = errors.New("connection refused")
	svc := NewProjectService(&fakeGenerator{posts: generatedPosts(1)}, store, nil)

	_, err := svc.Create(context.Background(), createInput(1))
	assert.EqualError(t, err, "connection refused")
}

func TestDeleteReturnsDeletedProject(t *testing.T) {
	store := newMemoryStore()
	svc := NewProjectService(&fakeGenerator{posts: generatedPosts(2)}, store, nil)

	created, err := svc.Create(context.Background(), createInput(2))
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brew & Co", deleted.BusinessName)

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestListNewestFirst(t *testing.T) {
	svc := NewProjectService(&fakeGenerator{posts: generatedPosts(1)}, newMemoryStore(), nil)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), createInput(1))
		require.NoError(t, err)
	}

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, uint(3), summaries[0].ID)
	assert.Equal(t, int64(1), summaries[0].PostCount)
}

func TestExport(t *testing.T) {
	svc := NewProjectService(&fakeGenerator{posts: generatedPosts(2)}, newMemoryStore(), nil).
		WithClock(func() time.Time { return fixedNow })

	created, err := svc.Create(context.Background(), createInput(2))
	require.NoError(t, err)

	filename, body, err := svc.Export(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "project_1_posts.txt", filename)
	assert.True(t, strings.HasPrefix(body, "Project: Brew & Co\n"))
	assert.Contains(t, body, "Post 2: Topic\n")
	assert.Contains(t, body, "Suggested Publish Date: 2024-03-31\n")

	_, _, err = svc.Export(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestBuildPostsTruncatesColumns(t *testing.T) {
	long := strings.Repeat("é", 300)
	posts := BuildPosts([]generator.Post{{PostTopic: long, CTA: strings.Repeat("x", 600)}}, fixedNow)

	require.Len(t, posts, 1)
	assert.Equal(t, 255, len([]rune(posts[0].PostTopic)))
	assert.Len(t, posts[0].CTA, 500)
	assert.Equal(t, models.StringArray{}, posts[0].Hashtags)
	assert.Equal(t, "2024-03-30", posts[0].PublishDate())
}
