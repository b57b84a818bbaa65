package catalog

import (
	"errors"
	"testing"

	"locallibrary/internal/data/repos/testutil"
	types "locallibrary/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuthorRepoDeleteRestricted(t *testing.T) {
	db := testutil.DB(t)
	repos := NewRepos(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	austen := testutil.SeedAuthor(t, db, "Jane", "Austen")
	testutil.SeedBook(t, db, "Emma", "9780141439587", austen, nil)

	err := repos.Authors.Delete(ctx, austen.ID)
	var rd *types.RestrictedDeleteError
	require.True(t, errors.As(err, &rd), "got %v", err)
	assert.Equal(t, types.ModelAuthor, rd.Model)
	assert.Equal(t, types.ModelBook, rd.Dependent)
	assert.EqualValues(t, 1, rd.Count)

	still, err := repos.Authors.GetByID(ctx, austen.ID)
	require.NoError(t, err)
	assert.Equal(t, "Austen, Jane", still.String())
}

func TestAuthorRepoDeleteWithoutBooks(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAuthorRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	a := &types.Author{FirstName: "Emily", LastName: "Bronte"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err := repo.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuthorRepoOrdering(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAuthorRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	for _, a := range []*types.Author{
		{FirstName: "Charlotte", LastName: "Bronte"},
		{FirstName: "Jane", LastName: "Austen"},
		{FirstName: "Anne", LastName: "Bronte"},
	} {
		require.NoError(t, repo.Create(ctx, a))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Austen, Jane", list[0].String())
	assert.Equal(t, "Bronte, Anne", list[1].String())
	assert.Equal(t, "Bronte, Charlotte", list[2].String())
}

func TestAuthorRepoDatesAndUpdate(t *testing.T) {
	db := testutil.DB(t)
	repo := NewAuthorRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	a := &types.Author{FirstName: "Jane", LastName: "Austen", DateOfBirth: testutil.Date(1775, 12, 16)}
	require.NoError(t, repo.Create(ctx, a))

	a.DateOfDeath = testutil.Date(1817, 7, 18)
	require.NoError(t, repo.Update(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DateOfDeath)
	assert.Equal(t, "1817-07-18", got.Display("date_of_death"))
	assert.Equal(t, "1775-12-16", got.Display("date_of_birth"))

	a.LastName = ""
	var ve *types.ValidationError
	require.True(t, errors.As(repo.Update(ctx, a), &ve))
	assert.Equal(t, "last_name", ve.Field())
}
