package admin

import (
	"net/http"
	"net/url"
	"time"

	siteadmin "locallibrary/internal/admin"
	repos "locallibrary/internal/data/repos/catalog"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/apierr"

	"github.com/gin-gonic/gin"
)

// object is any catalog record as seen by the admin views.
type object interface {
	siteadmin.Displayer
	String() string
}

// resource adapts one model's repository to the generic admin views.
type resource interface {
	list(c *gin.Context, dbc dbctx.Context) ([]object, error)
	get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error)
	// related returns the rows of inline that point at parent.
	related(dbc dbctx.Context, parent object, inline siteadmin.Inline) ([]object, error)
	create(c *gin.Context, dbc dbctx.Context) (object, error)
	update(c *gin.Context, dbc dbctx.Context) (object, error)
	delete(c *gin.Context, dbc dbctx.Context) error
}

func bind(c *gin.Context, form interface{}) error {
	if err := c.ShouldBindJSON(form); err != nil {
		return apierr.New(http.StatusBadRequest, "invalid_input", err)
	}
	return nil
}

func objects[T object](in []T) []object {
	out := make([]object, 0, len(in))
	for _, o := range in {
		out = append(out, o)
	}
	return out
}

// --- genre ---

type genreResource struct {
	repo repos.GenreRepo
}

func (r genreResource) list(c *gin.Context, dbc dbctx.Context) ([]object, error) {
	gs, err := r.repo.List(dbc)
	return objects(gs), err
}

func (r genreResource) get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return nil, nil, err
	}
	g, err := r.repo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, err
	}
	return g, GenreForm{Name: g.Name}, nil
}

func (r genreResource) related(dbctx.Context, object, siteadmin.Inline) ([]object, error) {
	return nil, nil
}

func (r genreResource) create(c *gin.Context, dbc dbctx.Context) (object, error) {
	var f GenreForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	g := &types.Genre{}
	if err := f.apply(g); err != nil {
		return nil, err
	}
	return g, r.repo.Create(dbc, g)
}

func (r genreResource) update(c *gin.Context, dbc dbctx.Context) (object, error) {
	obj, _, err := r.get(c, dbc)
	if err != nil {
		return nil, err
	}
	g := obj.(*types.Genre)
	var f GenreForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	if err := f.apply(g); err != nil {
		return nil, err
	}
	return g, r.repo.Update(dbc, g)
}

func (r genreResource) delete(c *gin.Context, dbc dbctx.Context) error {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return err
	}
	return r.repo.Delete(dbc, id)
}

// --- language ---

type languageResource struct {
	repo repos.LanguageRepo
}

func (r languageResource) list(c *gin.Context, dbc dbctx.Context) ([]object, error) {
	ls, err := r.repo.List(dbc)
	return objects(ls), err
}

func (r languageResource) get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return nil, nil, err
	}
	l, err := r.repo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, err
	}
	return l, LanguageForm{Name: l.Name}, nil
}

func (r languageResource) related(dbctx.Context, object, siteadmin.Inline) ([]object, error) {
	return nil, nil
}

func (r languageResource) create(c *gin.Context, dbc dbctx.Context) (object, error) {
	var f LanguageForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	l := &types.Language{}
	if err := f.apply(l); err != nil {
		return nil, err
	}
	return l, r.repo.Create(dbc, l)
}

func (r languageResource) update(c *gin.Context, dbc dbctx.Context) (object, error) {
	obj, _, err := r.get(c, dbc)
	if err != nil {
		return nil, err
	}
	l := obj.(*types.Language)
	var f LanguageForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	if err := f.apply(l); err != nil {
		return nil, err
	}
	return l, r.repo.Update(dbc, l)
}

func (r languageResource) delete(c *gin.Context, dbc dbctx.Context) error {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return err
	}
	return r.repo.Delete(dbc, id)
}

// --- author ---

type authorResource struct {
	repo  repos.AuthorRepo
	books repos.BookRepo
}

func (r authorResource) list(c *gin.Context, dbc dbctx.Context) ([]object, error) {
	as, err := r.repo.List(dbc)
	return objects(as), err
}

func (r authorResource) get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return nil, nil, err
	}
	a, err := r.repo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, err
	}
	return a, authorFormOf(a), nil
}

func (r authorResource) related(dbc dbctx.Context, parent object, inline siteadmin.Inline) ([]object, error) {
	if inline.Model != types.ModelBook {
		return nil, nil
	}
	a := parent.(*types.Author)
	bs, err := r.books.List(dbc, repos.BookFilter{AuthorID: &a.ID})
	return objects(bs), err
}

func (r authorResource) create(c *gin.Context, dbc dbctx.Context) (object, error) {
	var f AuthorForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	a := &types.Author{}
	if err := f.apply(a); err != nil {
		return nil, err
	}
	return a, r.repo.Create(dbc, a)
}

func (r authorResource) update(c *gin.Context, dbc dbctx.Context) (object, error) {
	obj, _, err := r.get(c, dbc)
	if err != nil {
		return nil, err
	}
	a := obj.(*types.Author)
	var f AuthorForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	if err := f.apply(a); err != nil {
		return nil, err
	}
	return a, r.repo.Update(dbc, a)
}

func (r authorResource) delete(c *gin.Context, dbc dbctx.Context) error {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return err
	}
	return r.repo.Delete(dbc, id)
}

// --- book ---

type bookResource struct {
	admin     siteadmin.ModelAdmin
	repo      repos.BookRepo
	instances repos.BookInstanceRepo
}

func (r bookResource) list(c *gin.Context, dbc dbctx.Context) ([]object, error) {
	bs, err := r.repo.List(dbc, repos.BookFilter{})
	return objects(bs), err
}

func (r bookResource) get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error) {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return nil, nil, err
	}
	b, err := r.repo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, err
	}
	return b, bookFormOf(b), nil
}

func (r bookResource) related(dbc dbctx.Context, parent object, inline siteadmin.Inline) ([]object, error) {
	if inline.Model != types.ModelBookInstance {
		return nil, nil
	}
	b := parent.(*types.Book)
	is, err := r.instances.List(dbc, repos.BookInstanceFilter{BookID: &b.ID})
	return objects(is), err
}

func (r bookResource) create(c *gin.Context, dbc dbctx.Context) (object, error) {
	var f BookForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	b := &types.Book{}
	if err := f.apply(r.admin, b); err != nil {
		return nil, err
	}
	return b, r.repo.Create(dbc, b, f.Genre)
}

func (r bookResource) update(c *gin.Context, dbc dbctx.Context) (object, error) {
	obj, _, err := r.get(c, dbc)
	if err != nil {
		return nil, err
	}
	b := obj.(*types.Book)
	var f BookForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	if err := f.apply(r.admin, b); err != nil {
		return nil, err
	}
	// Loaded associations would otherwise shadow the new foreign keys.
	b.Author, b.Language = nil, nil
	return b, r.repo.Update(dbc, b, f.Genre)
}

func (r bookResource) delete(c *gin.Context, dbc dbctx.Context) error {
	id, err := apierr.UintParam(c, "id")
	if err != nil {
		return err
	}
	return r.repo.Delete(dbc, id)
}

// --- book instance ---

type bookInstanceResource struct {
	admin siteadmin.ModelAdmin
	repo  repos.BookInstanceRepo
	now   func() time.Time
}

func (r bookInstanceResource) list(c *gin.Context, dbc dbctx.Context) ([]object, error) {
	f, err := instanceFilter(r.admin, c.Request.URL.Query(), r.now())
	if err != nil {
		return nil, err
	}
	is, err := r.repo.List(dbc, f)
	return objects(is), err
}

// instanceFilter reads the status and due_back changelist filters. Query
// parameters for fields outside the admin's list_filter are ignored.
func instanceFilter(m siteadmin.ModelAdmin, q url.Values, now time.Time) (repos.BookInstanceFilter, error) {
	var f repos.BookInstanceFilter
	if raw := q.Get("status"); raw != "" && m.HasFilter("status") {
		s := types.LoanStatus(raw)
		if !s.Valid() {
			return f, types.NewValidationError(types.ModelBookInstance, "status", types.MsgInvalidChoice)
		}
		f.Status = s
	}
	if !m.HasFilter("due_back") {
		return f, nil
	}
	rng, err := siteadmin.ResolveDateFilter(q.Get("due_back"), now)
	if err != nil {
		return f, types.NewValidationError(types.ModelBookInstance, "due_back", types.MsgInvalidChoice)
	}
	f.DueFrom, f.DueTo, f.DueBackNull = rng.From, rng.To, rng.IsNull
	return f, nil
}

func (r bookInstanceResource) get(c *gin.Context, dbc dbctx.Context) (object, interface{}, error) {
	id, err := apierr.UUIDParam(c, "id")
	if err != nil {
		return nil, nil, err
	}
	bi, err := r.repo.GetByID(dbc, id)
	if err != nil {
		return nil, nil, err
	}
	return bi, bookInstanceFormOf(bi), nil
}

func (r bookInstanceResource) related(dbctx.Context, object, siteadmin.Inline) ([]object, error) {
	return nil, nil
}

func (r bookInstanceResource) create(c *gin.Context, dbc dbctx.Context) (object, error) {
	var f BookInstanceForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	bi := &types.BookInstance{}
	if err := f.apply(r.admin, bi, true); err != nil {
		return nil, err
	}
	return bi, r.repo.Create(dbc, bi)
}

func (r bookInstanceResource) update(c *gin.Context, dbc dbctx.Context) (object, error) {
	obj, _, err := r.get(c, dbc)
	if err != nil {
		return nil, err
	}
	bi := obj.(*types.BookInstance)
	var f BookInstanceForm
	if err := bind(c, &f); err != nil {
		return nil, err
	}
	if err := f.apply(r.admin, bi, false); err != nil {
		return nil, err
	}
	bi.Book = nil
	return bi, r.repo.Update(dbc, bi)
}

func (r bookInstanceResource) delete(c *gin.Context, dbc dbctx.Context) error {
	id, err := apierr.UUIDParam(c, "id")
	if err != nil {
		return err
	}
	return r.repo.Delete(dbc, id)
}
