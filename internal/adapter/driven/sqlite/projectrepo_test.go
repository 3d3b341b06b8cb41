package sqlite

import (
	"context"
	"testing"

	"github.com/chayanin/showcase/internal/domain/model"
	"github.com/chayanin/showcase/internal/domain/port/driven"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeProject(id, title, dateISO string) model.Project {
	return model.Project{
		ID:          id,
		Title:       title,
		Description: "a description",
		DateISO:     dateISO,
		Tags:        []string{"go", "sqlite"},
		Links: []model.Link{
			{Label: "View Project", URL: "https://example.com"},
		},
	}
}

func TestProjectRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Personal Blog", "2023-05-01")))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Personal Blog", got.Title)
	assert.Equal(t, []string{"go", "sqlite"}, got.Tags)
	require.Len(t, got.Links, 1)
	assert.Equal(t, "View Project", got.Links[0].Label)
	assert.False(t, got.MarketEnabled)
}

func TestProjectRepo_Create_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	p := makeProject("p1", "Personal Blog", "2023-05-01")
	require.NoError(t, repo.Create(ctx, p))

	err := repo.Create(ctx, p)
	assert.ErrorIs(t, err, driven.ErrProjectExists)
}

// Nil tag and link slices must round-trip as empty lists, never null.
func TestProjectRepo_NilListsBecomeEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.Project{ID: "p1", Title: "Bare"}))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.NotNil(t, got.Links)
	assert.Empty(t, got.Links)
}

// Corrupt serialized tag text decodes to the empty list instead of failing
// the whole row.
func TestProjectRepo_CorruptTagsDecodeEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Personal Blog", "2023-05-01")))

	_, err := db.Writer.ExecContext(ctx, `UPDATE projects SET tags_text = 'not json' WHERE id = 'p1'`)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Tags)
}

func TestProjectRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Personal Blog", "2023-05-01")))

	updated := makeProject("p1", "Personal Blog v2", "2023-06-01")
	updated.Tags = []string{"rust"}
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Personal Blog v2", got.Title)
	assert.Equal(t, []string{"rust"}, got.Tags)
}

func TestProjectRepo_Update_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	err := repo.Update(ctx, makeProject("ghost", "Nope", "2023-01-01"))
	assert.ErrorIs(t, err, driven.ErrProjectNotFound)
}

func TestProjectRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Personal Blog", "2023-05-01")))
	require.NoError(t, repo.Delete(ctx, "p1"))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectRepo_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	err := repo.Delete(ctx, "ghost")
	assert.ErrorIs(t, err, driven.ErrProjectNotFound)
}

func TestProjectRepo_ListAll_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Oldest", "2023-05-01")))
	require.NoError(t, repo.Create(ctx, makeProject("p2", "Newest", "2023-10-15")))
	require.NoError(t, repo.Create(ctx, makeProject("p3", "Middle", "2023-08-22")))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "Newest", all[0].Title)
	assert.Equal(t, "Middle", all[1].Title)
	assert.Equal(t, "Oldest", all[2].Title)
}

func TestProjectRepo_SetMarketEnabled(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, makeProject("p1", "Personal Blog", "2023-05-01")))

	got, err := repo.SetMarketEnabled(ctx, "p1", true)
	require.NoError(t, err)
	assert.True(t, got.MarketEnabled)

	got, err = repo.SetMarketEnabled(ctx, "p1", false)
	require.NoError(t, err)
	assert.False(t, got.MarketEnabled)
}

func TestProjectRepo_SetMarketEnabled_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	_, err := repo.SetMarketEnabled(ctx, "ghost", true)
	assert.ErrorIs(t, err, driven.ErrProjectNotFound)
}
