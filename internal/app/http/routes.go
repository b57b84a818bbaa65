package routes

import (
	"fmt"

	siteadmin "locallibrary/internal/admin"
	adminapi "locallibrary/internal/api/admin"
	catalogapi "locallibrary/internal/api/catalog"
	"locallibrary/internal/app/http/middleware"
	repos "locallibrary/internal/data/repos/catalog"
	"locallibrary/internal/platform/logger"
	"locallibrary/internal/urls"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, log *logger.Logger) {
	r.Use(middleware.AccessLog(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	rs := repos.NewRepos(db, log)

	// Public catalog pages. Every named route must have a handler, so links
	// built with urls.Reverse always resolve.
	catalog := catalogapi.NewHandler(rs, log)
	pages := map[string]gin.HandlerFunc{
		urls.CatalogIndex:   catalog.Index,
		urls.BookList:       catalog.ListBooks,
		urls.BookDetail:     catalog.GetBook,
		urls.AuthorList:     catalog.ListAuthors,
		urls.AuthorDetail:   catalog.GetAuthor,
		urls.GenreDetail:    catalog.GetGenre,
		urls.LanguageDetail: catalog.GetLanguage,
	}
	for _, name := range urls.Names() {
		h, ok := pages[name]
		if !ok {
			panic(fmt.Sprintf("routes: no handler for named route %q", name))
		}
		r.GET(urls.MustPattern(name), h)
	}

	// Admin
	admin := adminapi.NewHandler(rs, siteadmin.CatalogSite(), log)
	ag := r.Group(adminapi.Prefix)
	ag.Use(middleware.SanitizeAndCleanInputMiddleware(log))
	ag.GET("/", admin.Models)
	ag.GET("/:model/", admin.ChangeList)
	ag.POST("/:model/", admin.Add)
	ag.GET("/:model/:id", admin.Change)
	ag.PUT("/:model/:id", admin.Save)
	ag.DELETE("/:model/:id", admin.Delete)
}
