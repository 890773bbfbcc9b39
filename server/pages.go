package server

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/likecontent/pkg/domain"
	"github.com/umputun/likecontent/pkg/likes"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	likeURL         = "/api/v1/like"
)

// pageData is passed to page templates
type pageData struct {
	Title      string
	LoadAssets bool
	LikeURL    string
	Posts      []domain.Post
	Post       *domain.Post
	Button     template.HTML
	Top        []domain.TopItem
	NextOffset int
}

// postsHandler renders the post list, it is not a single view and shows no like buttons
func (s *Server) postsHandler(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset := max(queryInt(r, "offset", 0), 0)

	posts, err := s.posts.ListPosts(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[ERROR] failed to list posts: %v", err)
		http.Error(w, "Failed to load posts", http.StatusInternalServerError)
		return
	}

	data := pageData{Title: "Posts", Posts: posts}
	if len(posts) == limit {
		data.NextOffset = offset + limit
	}
	s.renderPage(w, pagePosts, data)
}

// postHandler renders a single post with the like button
func (s *Server) postHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r)
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := s.posts.GetPost(r.Context(), postID)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to get post %d: %v", postID, err)
		http.Error(w, "Failed to load post", http.StatusInternalServerError)
		return
	}

	view := likes.View{Single: true, Post: post}
	button, err := s.likes.Button(r.Context(), view)
	if err != nil {
		log.Printf("[WARN] failed to render like button for %d: %v", postID, err)
	}

	s.renderPage(w, pagePost, pageData{
		Title:      post.Title,
		Post:       post,
		Button:     button,
		LoadAssets: button != "" && s.likes.LoadAssets(view),
		LikeURL:    likeURL,
	})
}

// dashboardHandler renders the most liked posts widget
func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.likes.TopLiked(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get most liked posts: %v", err)
		http.Error(w, "Failed to load most liked posts", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, pageDashboard, pageData{Title: "Most Liked Content", Top: items})
}

// renderPage renders a pre-parsed page template with the shared layout
func (s *Server) renderPage(w http.ResponseWriter, page string, data pageData) {
	tmpl, ok := s.pageTemplates[page]
	if !ok {
		log.Printf("[ERROR] template %s not found", page)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", page, err)
		http.Error(w, fmt.Sprintf("Failed to render %s", page), http.StatusInternalServerError)
	}
}

// queryInt returns integer query parameter or the default if missing or invalid
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return res
}
