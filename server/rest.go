package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/likecontent/pkg/domain"
	"github.com/umputun/likecontent/pkg/likes"
)

// ajaxAction is the admin-ajax action name served by the like handler
const ajaxAction = "be_like_content"

// envelope messages sent to the client script
const (
	msgNoPostID     = "No Post ID"
	msgUnsupported  = "This post type does not support likes"
	msgUpdateFailed = "Unable to update like count"
)

// envelope is the response of the like endpoint
type envelope struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

// countResponse is the response of the like count endpoint
type countResponse struct {
	PostID int64  `json:"post_id"`
	Count  int64  `json:"count"`
	Text   string `json:"text"`
}

// postRequest is the body of the post upsert endpoint
type postRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// likeHandler adds a like to the post given by post_id form value
func (s *Server) likeHandler(w http.ResponseWriter, r *http.Request) {
	// post_id is read like the stored counts, leading digits only
	postID := domain.ParseCount(r.FormValue("post_id"))

	count, err := s.likes.Increment(r.Context(), postID)
	switch {
	case errors.Is(err, likes.ErrNoPostID):
		s.metrics.likeResult(resultNoPostID)
		renderJSON(w, r, http.StatusBadRequest, envelope{Success: false, Data: msgNoPostID})
		return
	case errors.Is(err, likes.ErrUnsupportedType):
		s.metrics.likeResult(resultUnsupported)
		renderJSON(w, r, http.StatusBadRequest, envelope{Success: false, Data: msgUnsupported})
		return
	case err != nil:
		log.Printf("[WARN] failed to like post %d: %v", postID, err)
		s.metrics.likeResult(resultError)
		renderJSON(w, r, http.StatusInternalServerError, envelope{Success: false, Data: msgUpdateFailed})
		return
	}

	log.Printf("[DEBUG] post %d liked, count %d", postID, count)
	s.metrics.likeResult(resultOK)
	renderJSON(w, r, http.StatusOK, envelope{Success: true, Data: s.likes.Text(postID, count)})
}

// adminAjaxHandler dispatches admin-ajax.php requests, only the like action is known
func (s *Server) adminAjaxHandler(w http.ResponseWriter, r *http.Request) {
	if r.FormValue("action") != ajaxAction {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("0"))
		return
	}
	s.likeHandler(w, r)
}

// countHandler returns like count and rendered text of the post
func (s *Server) countHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	count, err := s.likes.Count(r.Context(), postID)
	if err != nil {
		log.Printf("[ERROR] failed to get like count: %v", err)
		renderError(w, r, fmt.Errorf("can't get like count"), http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusOK, countResponse{PostID: postID, Count: count, Text: s.likes.Text(postID, count)})
}

// topHandler returns the most liked posts
func (s *Server) topHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.likes.TopLiked(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get most liked posts: %v", err)
		renderError(w, r, fmt.Errorf("can't get most liked posts"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, items)
}

// upsertPostHandler creates or updates a post registered for likes
func (s *Server) upsertPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid post data"), http.StatusBadRequest)
		return
	}

	post := &domain.Post{
		ID:        postID,
		Type:      strings.TrimSpace(req.Type),
		Title:     strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(req.Title))), // stored as plain text
		Permalink: strings.TrimSpace(req.Permalink),
	}
	if post.Type == "" {
		post.Type = "post"
	}

	if err := s.posts.UpsertPost(r.Context(), post); err != nil {
		log.Printf("[ERROR] failed to save post %d: %v", postID, err)
		renderError(w, r, fmt.Errorf("can't save post"), http.StatusInternalServerError)
		return
	}

	saved, err := s.posts.GetPost(r.Context(), postID)
	if err != nil {
		log.Printf("[ERROR] failed to reload post %d: %v", postID, err)
		renderError(w, r, fmt.Errorf("can't load post"), http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] post %d saved, type %q", postID, saved.Type)
	renderJSON(w, r, http.StatusOK, saved)
}

// deletePostHandler removes a post and its like count
func (s *Server) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	err = s.posts.DeletePost(r.Context(), postID)
	if errors.Is(err, domain.ErrNotFound) {
		renderError(w, r, fmt.Errorf("post not found"), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to delete post %d: %v", postID, err)
		renderError(w, r, fmt.Errorf("can't delete post"), http.StatusInternalServerError)
		return
	}

	log.Printf("[INFO] post %d deleted", postID)
	w.WriteHeader(http.StatusOK)
}

// parseID reads positive post id from the path
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post ID")
	}
	return id, nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
