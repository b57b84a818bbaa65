package catalog

import (
	"errors"
	"testing"

	"locallibrary/internal/data/repos/testutil"
	types "locallibrary/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookRepoISBNUnique(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBookRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	first := &types.Book{Title: "Emma", Summary: "s", ISBN: "9780141439587"}
	require.NoError(t, repo.Create(ctx, first, nil))

	second := &types.Book{Title: "Emma (reprint)", Summary: "s", ISBN: "9780141439587"}
	err := repo.Create(ctx, second, nil)
	var ve *types.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "isbn", ve.Field())
	assert.Zero(t, second.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	// saving a book with its own isbn is fine
	first.Title = "Emma."
	require.NoError(t, repo.Update(ctx, first, nil))
}

func TestBookRepoGenreOrderAndSummary(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBookRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	d := testutil.SeedGenre(t, db, "D")
	a := testutil.SeedGenre(t, db, "A")
	c := testutil.SeedGenre(t, db, "C")
	b := testutil.SeedGenre(t, db, "B")

	book := &types.Book{Title: "Anthology", Summary: "s", ISBN: "1111111111111"}
	require.NoError(t, repo.Create(ctx, book, []uint{a.ID, b.ID, c.ID, d.ID, a.ID}))
	require.Len(t, book.Genres, 4)

	got, err := repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "A, B, C", got.DisplayGenre())
	assert.Equal(t, []uint{a.ID, b.ID, c.ID, d.ID}, got.GenreIDs())

	require.NoError(t, repo.Update(ctx, got, []uint{d.ID, c.ID}))
	got, err = repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "D, C", got.DisplayGenre())

	// nil keeps the current genres
	got.Title = "Anthology II"
	require.NoError(t, repo.Update(ctx, got, nil))
	got, err = repo.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "D, C", got.DisplayGenre())
	assert.Equal(t, "Anthology II", got.Title)
}

func TestBookRepoInvalidReferences(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBookRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	missing := uint(404)
	book := &types.Book{Title: "T", Summary: "s", ISBN: "2222222222222", AuthorID: &missing, LanguageID: &missing}
	err := repo.Create(ctx, book, []uint{missing})

	var ve *types.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, []string{"author", "genre", "language"}, ve.Fields())
}

func TestBookRepoDeleteRestricted(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBookRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	g := testutil.SeedGenre(t, db, "Classic")
	withCopy := testutil.SeedBook(t, db, "Emma", "9780141439587", nil, nil, g)
	testutil.SeedInstance(t, db, withCopy, nil, "")
	noCopy := testutil.SeedBook(t, db, "Persuasion", "9780141439686", nil, nil, g)

	var rd *types.RestrictedDeleteError
	require.True(t, errors.As(repo.Delete(ctx, withCopy.ID), &rd))
	assert.Equal(t, types.ModelBookInstance, rd.Dependent)

	require.NoError(t, repo.Delete(ctx, noCopy.ID))

	var links int64
	require.NoError(t, db.Model(&types.BookGenre{}).Where("book_id = ?", noCopy.ID).Count(&links).Error)
	assert.Zero(t, links)
}

func TestBookRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	repo := NewBookRepo(db, testutil.Logger(t))
	ctx := testutil.Ctx()

	en := testutil.SeedLanguage(t, db, "English")
	austen := testutil.SeedAuthor(t, db, "Jane", "Austen")
	hugo := testutil.SeedAuthor(t, db, "Victor", "Hugo")
	romance := testutil.SeedGenre(t, db, "Romance")

	emma := testutil.SeedBook(t, db, "Emma", "9780141439587", austen, en, romance)
	testutil.SeedBook(t, db, "Notre-Dame", "9780140443530", hugo, nil)

	all, err := repo.List(ctx, BookFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Austen, Jane", all[0].Display("author"))
	assert.Equal(t, "English", all[0].Display("language"))
	assert.Equal(t, types.EmptyValue, all[1].Display("language"))

	byAuthor, err := repo.List(ctx, BookFilter{AuthorID: &austen.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, emma.ID, byAuthor[0].ID)

	byGenre, err := repo.List(ctx, BookFilter{GenreID: &romance.ID})
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Romance", byGenre[0].DisplayGenre())

	byLang, err := repo.List(ctx, BookFilter{LanguageID: &en.ID})
	require.NoError(t, err)
	assert.Len(t, byLang, 1)
}
