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

func TestLanguageRepoUnique(t *testing.T) {
	db := testutil.DB(t)
	repo := NewLanguageRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	require.NoError(t, repo.Create(ctx, &types.Language{Name: "English"}))

	var ve *types.ValidationError
	require.True(t, errors.As(repo.Create(ctx, &types.Language{Name: "English"}), &ve))
	assert.Equal(t, "name", ve.Field())
	assert.Equal(t, msgLanguageExists, ve.Errors["name"])

	// exact match only
	require.NoError(t, repo.Create(ctx, &types.Language{Name: "english"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "English", list[0].Name)
}

func TestLanguageRepoDeleteSetsNull(t *testing.T) {
	db := testutil.DB(t)
	repos := NewRepos(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	fr := testutil.SeedLanguage(t, db, "French")
	author := testutil.SeedAuthor(t, db, "Victor", "Hugo")
	book := testutil.SeedBook(t, db, "Les Misérables", "9780451419439", author, fr)

	require.NoError(t, repos.Languages.Delete(ctx, fr.ID))

	got, err := repos.Books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LanguageID)
	assert.Nil(t, got.Language)

	_, err = repos.Languages.GetByID(ctx, fr.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLanguageRepoDeleteUnreferenced(t *testing.T) {
	db := testutil.DB(t)
	repo := NewLanguageRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	l := testutil.SeedLanguage(t, db, "Latin")
	require.NoError(t, repo.Delete(ctx, l.ID))
	assert.ErrorIs(t, repo.Delete(ctx, l.ID), gorm.ErrRecordNotFound)
}
