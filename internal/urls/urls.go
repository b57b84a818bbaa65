// Package urls holds the named route table shared by the router and by
// models that need to link to their own detail pages.
package urls

import (
	"fmt"
	"sort"
	"strings"
)

// Route names.
const (
	CatalogIndex   = "index"
	BookList       = "books"
	BookDetail     = "book-detail"
	AuthorList     = "authors"
	AuthorDetail   = "author-detail"
	GenreDetail    = "genre-detail"
	LanguageDetail = "language-detail"
)

var routes = map[string]string{
	CatalogIndex:   "/catalog/",
	BookList:       "/catalog/books",
	BookDetail:     "/catalog/book/:id",
	AuthorList:     "/catalog/authors",
	AuthorDetail:   "/catalog/author/:id",
	GenreDetail:    "/catalog/genre/:id",
	LanguageDetail: "/catalog/language/:id",
}

// Pattern returns the gin path pattern registered under name.
func Pattern(name string) (string, bool) {
	p, ok := routes[name]
	return p, ok
}

// MustPattern is Pattern for route setup, where an unknown name is a programming error.
func MustPattern(name string) string {
	p, ok := Pattern(name)
	if !ok {
		panic(fmt.Sprintf("urls: no route named %q", name))
	}
	return p
}

// Names lists every registered route name, sorted.
func Names() []string {
	out := make([]string, 0, len(routes))
	for name := range routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reverse builds the path for name, substituting args for the pattern's
// ":param" segments in order.
func Reverse(name string, args ...string) (string, error) {
	pattern, ok := routes[name]
	if !ok {
		return "", fmt.Errorf("reverse for %q not found", name)
	}

	segments := strings.Split(pattern, "/")
	next := 0
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		if next >= len(args) {
			return "", fmt.Errorf("reverse for %q: expected more than %d argument(s)", name, len(args))
		}
		if args[next] == "" || strings.Contains(args[next], "/") {
			return "", fmt.Errorf("reverse for %q: invalid argument %q for %s", name, args[next], seg)
		}
		segments[i] = args[next]
		next++
	}
	if next != len(args) {
		return "", fmt.Errorf("reverse for %q: expected %d argument(s), got %d", name, next, len(args))
	}
	return strings.Join(segments, "/"), nil
}

func MustReverse(name string, args ...string) string {
	p, err := Reverse(name, args...)
	if err != nil {
		panic(err)
	}
	return p
}
