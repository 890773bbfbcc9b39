package likes

import (
	"context"
	"fmt"
	"html/template"

	"github.com/umputun/likecontent/pkg/domain"
)

// View describes the page being rendered
type View struct {
	Single bool         // single post view
	Post   *domain.Post // post shown, nil for non-post pages
}

// Visible checks if the like button belongs on the view: a single post view of an eligible type
func (s *Service) Visible(view View) bool {
	return view.Single && view.Post != nil && s.Eligible(view.Post.Type)
}

// Button renders the like button for the view, empty if the view doesn't get one
func (s *Service) Button(ctx context.Context, view View) (template.HTML, error) {
	if !s.Visible(view) {
		return "", nil
	}

	text, err := s.Render(ctx, view.Post.ID)
	if err != nil {
		return "", err
	}

	return template.HTML(fmt.Sprintf( //nolint:gosec // text is escaped
		`<a href="#" class="be-like-content" data-post-id="%d"><span class="text">%s</span></a>`,
		view.Post.ID, template.HTMLEscapeString(text))), nil
}

// LoadAssets checks if the client script should be included on the view.
// Views without a button never load it, otherwise the LoadAssets hook decides, default is yes.
func (s *Service) LoadAssets(view View) bool {
	if !s.Visible(view) {
		return false
	}
	if s.hooks.LoadAssets != nil {
		return s.hooks.LoadAssets(*view.Post)
	}
	return true
}
