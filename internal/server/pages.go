// ABOUTME: Marketing pages rendered from embedded markdown via goldmark
// ABOUTME: Serves the about page and blog posts as HTML

package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
)

//go:embed content/*.md content/blog/*.md templates/page.html
var contentFS embed.FS

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// handlePage serves a markdown file from the embedded content directory.
func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderMarkdown(w, r, path.Join("content", name))
	}
}

// handleBlogPost serves a blog post by slug.
func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if !slugPattern.MatchString(slug) {
		http.NotFound(w, r)
		return
	}
	s.renderMarkdown(w, r, path.Join("content", "blog", slug+".md"))
}

// handleBlogIndex lists the published blog posts as a page of links.
func (s *Server) handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	slugs, err := ListBlogSlugs()
	if err != nil {
		s.logger.Error("listing blog posts", "error", err)
		http.NotFound(w, r)
		return
	}

	var md strings.Builder
	md.WriteString("# Blog\n\n")
	for _, slug := range slugs {
		fmt.Fprintf(&md, "- [%s](/blog/%s)\n", slug, slug)
	}
	s.renderPage(w, []byte(md.String()))
}

func (s *Server) renderMarkdown(w http.ResponseWriter, r *http.Request, file string) {
	mdContent, err := contentFS.ReadFile(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.renderPage(w, mdContent)
}

func (s *Server) renderPage(w http.ResponseWriter, mdContent []byte) {
	// Convert markdown to HTML
	var htmlBuf bytes.Buffer
	if err := goldmark.Convert(mdContent, &htmlBuf); err != nil {
		s.logger.Error("failed to convert markdown", "error", err)
		htmlBuf.WriteString("<p>Failed to render page.</p>")
	}

	data := struct {
		Title   string
		Content template.HTML
	}{
		Title:   pageTitle(mdContent),
		Content: template.HTML(htmlBuf.String()),
	}

	tmpl := template.Must(template.ParseFS(contentFS, "templates/page.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

// pageTitle extracts the first level-one heading, if any.
func pageTitle(md []byte) string {
	for _, line := range strings.Split(string(md), "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return "Academy"
}

// ListBlogSlugs returns the slugs of all embedded blog posts.
func ListBlogSlugs() ([]string, error) {
	entries, err := contentFS.ReadDir("content/blog")
	if err != nil {
		return nil, fmt.Errorf("reading blog content: %w", err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	return out, nil
}
