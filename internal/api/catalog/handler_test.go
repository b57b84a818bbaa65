package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	repos "locallibrary/internal/data/repos/catalog"
	"locallibrary/internal/data/repos/testutil"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/urls"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)
	h := NewHandler(repos.NewRepos(db, log), log)

	r := gin.New()
	r.GET(urls.MustPattern(urls.CatalogIndex), h.Index)
	r.GET(urls.MustPattern(urls.BookList), h.ListBooks)
	r.GET(urls.MustPattern(urls.AuthorList), h.ListAuthors)
	r.GET(urls.MustPattern(urls.AuthorDetail), h.GetAuthor)
	r.GET(urls.MustPattern(urls.GenreDetail), h.GetGenre)
	r.GET(urls.MustPattern(urls.LanguageDetail), h.GetLanguage)
	return r, db
}

func get(t *testing.T, r *gin.Engine, path string, out interface{}) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestListAuthors(t *testing.T) {
	r, db := newTestRouter(t)
	leguin := testutil.SeedAuthor(t, db, "Ursula", "Le Guin")
	leguin.DateOfBirth = testutil.Date(1929, 10, 21)
	require.NoError(t, db.Save(leguin).Error)
	testutil.SeedAuthor(t, db, "Frank", "Herbert")
	testutil.SeedBook(t, db, "Dune", "9780441013593", nil, nil)

	var authors []AuthorDTO
	require.Equal(t, http.StatusOK, get(t, r, urls.MustReverse(urls.AuthorList), &authors))
	require.Len(t, authors, 2)

	assert.Equal(t, "Herbert, Frank", authors[0].Name)
	assert.Nil(t, authors[0].DateOfBirth)
	assert.Nil(t, authors[0].Books)

	assert.Equal(t, "Le Guin, Ursula", authors[1].Name)
	assert.Equal(t, leguin.AbsoluteURL(), authors[1].URL)
	require.NotNil(t, authors[1].DateOfBirth)
	assert.Equal(t, "1929-10-21", *authors[1].DateOfBirth)

	var raw []map[string]interface{}
	require.Equal(t, http.StatusOK, get(t, r, urls.MustReverse(urls.AuthorList), &raw))
	assert.NotContains(t, raw[0], "books")
	assert.Contains(t, raw[0], "date_of_death")
}

func TestGetAuthorIncludesBooks(t *testing.T) {
	r, db := newTestRouter(t)
	a := testutil.SeedAuthor(t, db, "Frank", "Herbert")
	other := testutil.SeedAuthor(t, db, "Ursula", "Le Guin")
	testutil.SeedBook(t, db, "Dune", "9780441013593", a, nil)
	testutil.SeedBook(t, db, "The Dispossessed", "9780061054884", other, nil)

	var got AuthorDTO
	require.Equal(t, http.StatusOK, get(t, r, a.AbsoluteURL(), &got))
	require.Len(t, got.Books, 1)
	assert.Equal(t, "Dune", got.Books[0].Title)
	assert.Equal(t, a.AbsoluteURL(), got.Books[0].Author.URL)
}

func TestGetGenre(t *testing.T) {
	r, db := newTestRouter(t)
	a := testutil.SeedAuthor(t, db, "Frank", "Herbert")
	sf := testutil.SeedGenre(t, db, "Science Fiction")
	adv := testutil.SeedGenre(t, db, "Adventure")
	romance := testutil.SeedGenre(t, db, "Romance")
	dune := testutil.SeedBook(t, db, "Dune", "9780441013593", a, nil, sf, adv)
	testutil.SeedBook(t, db, "Emma", "9780141439587", nil, nil, romance)

	var got GroupDTO
	require.Equal(t, http.StatusOK, get(t, r, sf.AbsoluteURL(), &got))
	assert.Equal(t, sf.ID, got.ID)
	assert.Equal(t, "Science Fiction", got.Name)
	assert.Equal(t, sf.AbsoluteURL(), got.URL)
	require.Len(t, got.Books, 1)

	book := got.Books[0]
	assert.Equal(t, dune.ID, book.ID)
	assert.Equal(t, dune.AbsoluteURL(), book.URL)
	assert.Equal(t, "Science Fiction, Adventure", book.Genre)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Herbert, Frank", book.Author.Name)

	var raw map[string]interface{}
	require.Equal(t, http.StatusOK, get(t, r, adv.AbsoluteURL(), &raw))
	assert.ElementsMatch(t, []string{"id", "name", "url", "books"}, keys(raw))
}

func TestGetLanguageWithoutBooks(t *testing.T) {
	r, db := newTestRouter(t)
	fr := testutil.SeedLanguage(t, db, "French")

	var raw map[string]interface{}
	require.Equal(t, http.StatusOK, get(t, r, fr.AbsoluteURL(), &raw))
	assert.Equal(t, "French", raw["name"])
	assert.Equal(t, []interface{}{}, raw["books"])
}

func TestListBooksAndIndex(t *testing.T) {
	r, db := newTestRouter(t)
	b := testutil.SeedBook(t, db, "Dune", "9780441013593", nil, nil)
	testutil.SeedInstance(t, db, b, nil, types.StatusAvailable)
	testutil.SeedInstance(t, db, b, nil, types.StatusReserved)

	var books []BookSummaryDTO
	require.Equal(t, http.StatusOK, get(t, r, urls.MustReverse(urls.BookList), &books))
	require.Len(t, books, 1)
	assert.Nil(t, books[0].Author)
	assert.Empty(t, books[0].Genre)

	var idx IndexDTO
	require.Equal(t, http.StatusOK, get(t, r, urls.MustReverse(urls.CatalogIndex), &idx))
	assert.Equal(t, IndexDTO{NumBooks: 1, NumInstances: 2, NumInstancesAvailable: 1}, idx)
}

func TestDetailMissing(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusNotFound, get(t, r, urls.MustReverse(urls.GenreDetail, "42"), nil))
	assert.Equal(t, http.StatusNotFound, get(t, r, "/catalog/author/x", nil))
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
