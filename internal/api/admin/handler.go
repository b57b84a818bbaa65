package admin

import (
	"fmt"
	"net/http"
	"time"

	siteadmin "locallibrary/internal/admin"
	repos "locallibrary/internal/data/repos/catalog"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/pkg/dbctx"
	"locallibrary/internal/platform/apierr"
	"locallibrary/internal/platform/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Prefix is where the admin catalog routes are mounted.
const Prefix = "/admin/catalog"

type ChangeListRow struct {
	ID     string   `json:"id"`
	Label  string   `json:"label"`
	URL    string   `json:"url"`
	Values []string `json:"values"`
}

type FilterView struct {
	Field    string   `json:"field"`
	Choices  []string `json:"choices"`
	Selected string   `json:"selected,omitempty"`
}

type ChangeList struct {
	Model         string             `json:"model"`
	VerbosePlural string             `json:"verbose_name_plural"`
	Headers       []string           `json:"headers"`
	Columns       []siteadmin.Column `json:"columns"`
	Filters       []FilterView       `json:"filters,omitempty"`
	Count         int                `json:"count"`
	Results       []ChangeListRow    `json:"results"`
}

type InlineRow struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

type InlineView struct {
	Model  string      `json:"model"`
	Fields []string    `json:"fields"`
	Extra  int         `json:"extra"`
	Rows   []InlineRow `json:"rows"`
}

type ChangeView struct {
	Model     string               `json:"model"`
	ID        string               `json:"id"`
	Label     string               `json:"label"`
	SiteURL   string               `json:"site_url,omitempty"`
	Fields    []siteadmin.Field    `json:"fields"`
	Fieldsets []siteadmin.Fieldset `json:"fieldsets"`
	Values    interface{}          `json:"values"`
	Inlines   []InlineView         `json:"inlines"`
}

// Handler serves list, change, add and delete views for every model
// registered on the site.
type Handler struct {
	site      *siteadmin.Site
	resources map[string]resource
	log       *logger.Logger
}

func NewHandler(r *repos.Repos, site *siteadmin.Site, baseLog *logger.Logger) *Handler {
	book, _ := site.Get(types.ModelBook)
	instance, _ := site.Get(types.ModelBookInstance)

	return &Handler{
		site: site,
		resources: map[string]resource{
			types.ModelGenre:        genreResource{repo: r.Genres},
			types.ModelLanguage:     languageResource{repo: r.Languages},
			types.ModelAuthor:       authorResource{repo: r.Authors, books: r.Books},
			types.ModelBook:         bookResource{admin: book, repo: r.Books, instances: r.BookInstances},
			types.ModelBookInstance: bookInstanceResource{admin: instance, repo: r.BookInstances, now: time.Now},
		},
		log: baseLog.With("handler", "AdminHandler"),
	}
}

func ChangeURL(model, id string) string {
	return fmt.Sprintf("%s/%s/%s", Prefix, model, id)
}

func reqCtx(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

func (h *Handler) lookup(c *gin.Context) (siteadmin.ModelAdmin, resource, bool) {
	name := c.Param("model")
	m, ok := h.site.Get(name)
	res, hasRes := h.resources[name]
	if !ok || !hasRes {
		apierr.Respond(c, h.log, fmt.Errorf("model %q: %w", name, gorm.ErrRecordNotFound), "load model")
		return siteadmin.ModelAdmin{}, nil, false
	}
	return m, res, true
}

// Models lists the registered model configurations.
func (h *Handler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.site.Models()})
}

func (h *Handler) ChangeList(c *gin.Context) {
	m, res, ok := h.lookup(c)
	if !ok {
		return
	}

	objs, err := res.list(c, reqCtx(c))
	if err != nil {
		apierr.Respond(c, h.log, err, "load "+m.VerbosePlural)
		return
	}

	rows := make([]ChangeListRow, 0, len(objs))
	for _, o := range objs {
		id := o.Display("id")
		rows = append(rows, ChangeListRow{
			ID:     id,
			Label:  o.String(),
			URL:    ChangeURL(m.Model, id),
			Values: m.Row(o),
		})
	}

	filters := make([]FilterView, 0, len(m.ListFilter))
	for _, field := range m.ListFilter {
		filters = append(filters, FilterView{
			Field:    field,
			Choices:  filterChoices(m, field),
			Selected: c.Query(field),
		})
	}

	c.JSON(http.StatusOK, ChangeList{
		Model:         m.Model,
		VerbosePlural: m.VerbosePlural,
		Headers:       m.Headers(),
		Columns:       m.ListDisplay,
		Filters:       filters,
		Count:         len(rows),
		Results:       rows,
	})
}

// filterChoices offers a field's declared choices, or the date filter
// choices for fields without any.
func filterChoices(m siteadmin.ModelAdmin, field string) []string {
	if f, ok := m.Field(field); ok && len(f.Choices) > 0 {
		return f.Choices
	}
	return siteadmin.DateChoices()
}

func (h *Handler) Change(c *gin.Context) {
	m, res, ok := h.lookup(c)
	if !ok {
		return
	}
	dbc := reqCtx(c)

	obj, values, err := res.get(c, dbc)
	if err != nil {
		apierr.Respond(c, h.log, err, "load "+m.VerboseName)
		return
	}

	inlines := make([]InlineView, 0, len(m.Inlines))
	for _, in := range m.Inlines {
		children, err := res.related(dbc, obj, in)
		if err != nil {
			apierr.Respond(c, h.log, err, "load "+in.Model)
			return
		}
		inlines = append(inlines, inlineView(in, children))
	}

	view := ChangeView{
		Model:     m.Model,
		ID:        obj.Display("id"),
		Label:     obj.String(),
		Fields:    m.Fields,
		Fieldsets: m.FieldsetsOrDefault(),
		Values:    values,
		Inlines:   inlines,
	}
	if linked, ok := obj.(interface{ AbsoluteURL() string }); ok {
		view.SiteURL = linked.AbsoluteURL()
	}
	c.JSON(http.StatusOK, view)
}

func inlineView(in siteadmin.Inline, children []object) InlineView {
	rows := make([]InlineRow, 0, len(children))
	for _, o := range children {
		values := make(map[string]string, len(in.Fields))
		for _, f := range in.Fields {
			values[f] = o.Display(f)
		}
		rows = append(rows, InlineRow{ID: o.Display("id"), Label: o.String(), Values: values})
	}
	return InlineView{Model: in.Model, Fields: in.Fields, Extra: in.Extra, Rows: rows}
}

func (h *Handler) Add(c *gin.Context) {
	m, res, ok := h.lookup(c)
	if !ok {
		return
	}

	obj, err := res.create(c, reqCtx(c))
	if err != nil {
		apierr.Respond(c, h.log, err, "create "+m.VerboseName)
		return
	}

	id := obj.Display("id")
	h.log.Info("Admin record created", "model", m.Model, "id", id)
	c.JSON(http.StatusCreated, gin.H{"id": id, "label": obj.String(), "url": ChangeURL(m.Model, id)})
}

func (h *Handler) Save(c *gin.Context) {
	m, res, ok := h.lookup(c)
	if !ok {
		return
	}

	obj, err := res.update(c, reqCtx(c))
	if err != nil {
		apierr.Respond(c, h.log, err, "update "+m.VerboseName)
		return
	}

	id := obj.Display("id")
	h.log.Info("Admin record updated", "model", m.Model, "id", id)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id, "label": obj.String()})
}

func (h *Handler) Delete(c *gin.Context) {
	m, res, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := res.delete(c, reqCtx(c)); err != nil {
		apierr.Respond(c, h.log, err, "delete "+m.VerboseName)
		return
	}

	h.log.Info("Admin record deleted", "model", m.Model, "id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
