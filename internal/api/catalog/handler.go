package catalog

import (
	"net/http"

	repos "locallibrary/internal/data/repos/catalog"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/apierr"
	"locallibrary/internal/platform/logger"

	"github.com/gin-gonic/gin"
)

// Handler serves the read-only public catalog pages.
type Handler struct {
	repos *repos.Repos
	log   *logger.Logger
}

func NewHandler(r *repos.Repos, baseLog *logger.Logger) *Handler {
	return &Handler{repos: r, log: baseLog.With("handler", "CatalogHandler")}
}

func reqCtx(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// Index returns the record counts shown on the catalog home page.
func (h *Handler) Index(c *gin.Context) {
	dbc := reqCtx(c)

	var out IndexDTO
	var err error
	if out.NumBooks, err = h.repos.Books.Count(dbc); err != nil {
		apierr.Respond(c, h.log, err, "count books")
		return
	}
	if out.NumInstances, err = h.repos.BookInstances.Count(dbc, repos.BookInstanceFilter{}); err != nil {
		apierr.Respond(c, h.log, err, "count copies")
		return
	}
	available := repos.BookInstanceFilter{Status: types.StatusAvailable}
	if out.NumInstancesAvailable, err = h.repos.BookInstances.Count(dbc, available); err != nil {
		apierr.Respond(c, h.log, err, "count copies")
		return
	}
	if out.NumAuthors, err = h.repos.Authors.Count(dbc); err != nil {
		apierr.Respond(c, h.log, err, "count authors")
		return
	}
	if out.NumGenres, err = h.repos.Genres.Count(dbc); err != nil {
		apierr.Respond(c, h.log, err, "count genres")
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.repos.Books.List(reqCtx(c), repos.BookFilter{})
	if err != nil {
		apierr.Respond(c, h.log, err, "load books")
		return
	}
	c.JSON(http.StatusOK, toBookSummaries(books))
}

func (h *Handler) GetBook(c *gin.Context) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		apierr.Respond(c, h.log, err, "load book")
		return
	}
	dbc := reqCtx(c)

	b, err := h.repos.Books.GetByID(dbc, id)
	if err != nil {
		apierr.Respond(c, h.log, err, "load book")
		return
	}
	copies, err := h.repos.BookInstances.List(dbc, repos.BookInstanceFilter{BookID: &b.ID})
	if err != nil {
		apierr.Respond(c, h.log, err, "load copies")
		return
	}

	c.JSON(http.StatusOK, toBookDetail(b, copies))
}

func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.repos.Authors.List(reqCtx(c))
	if err != nil {
		apierr.Respond(c, h.log, err, "load authors")
		return
	}
	out := make([]AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthor(a, nil))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetAuthor(c *gin.Context) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		apierr.Respond(c, h.log, err, "load author")
		return
	}
	dbc := reqCtx(c)

	a, err := h.repos.Authors.GetByID(dbc, id)
	if err != nil {
		apierr.Respond(c, h.log, err, "load author")
		return
	}
	books, err := h.repos.Books.List(dbc, repos.BookFilter{AuthorID: &a.ID})
	if err != nil {
		apierr.Respond(c, h.log, err, "load books")
		return
	}

	c.JSON(http.StatusOK, toAuthor(a, books))
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		apierr.Respond(c, h.log, err, "load genre")
		return
	}
	dbc := reqCtx(c)

	g, err := h.repos.Genres.GetByID(dbc, id)
	if err != nil {
		apierr.Respond(c, h.log, err, "load genre")
		return
	}
	books, err := h.repos.Books.List(dbc, repos.BookFilter{GenreID: &g.ID})
	if err != nil {
		apierr.Respond(c, h.log, err, "load books")
		return
	}

	c.JSON(http.StatusOK, GroupDTO{ID: g.ID, Name: g.String(), URL: g.AbsoluteURL(), Books: toBookSummaries(books)})
}

func (h *Handler) GetLanguage(c *gin.Context) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		apierr.Respond(c, h.log, err, "load language")
		return
	}
	dbc := reqCtx(c)

	l, err := h.repos.Languages.GetByID(dbc, id)
	if err != nil {
		apierr.Respond(c, h.log, err, "load language")
		return
	}
	books, err := h.repos.Books.List(dbc, repos.BookFilter{LanguageID: &l.ID})
	if err != nil {
		apierr.Respond(c, h.log, err, "load books")
		return
	}

	c.JSON(http.StatusOK, GroupDTO{ID: l.ID, Name: l.String(), URL: l.AbsoluteURL(), Books: toBookSummaries(books)})
}
