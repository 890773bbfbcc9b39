package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/likecontent/pkg/domain"
)

// Generator creates RSS feeds of the most liked posts
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from the most liked widget rows, order is kept
func (g *Generator) GenerateRSS(items []domain.TopItem) (string, error) {
	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         "Most Liked Content",
			Link:          g.baseURL + "/posts",
			Description:   "Posts with the most likes",
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss/top", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a widget row to an RSS item, permalinks relative to the site get base url
func (g *Generator) convertToRSSItem(item domain.TopItem) *RSSItem {
	link := item.Permalink
	if strings.HasPrefix(link, "/") {
		link = g.baseURL + link
	}

	title := item.Title
	if title == "" {
		title = "#" + strconv.FormatInt(item.PostID, 10)
	}

	return &RSSItem{
		Title:       fmt.Sprintf("%s (%s)", title, item.Label),
		Link:        link,
		GUID:        &RSSGUID{Value: "post-" + strconv.FormatInt(item.PostID, 10), IsPermaLink: "false"},
		Description: item.Label,
	}
}
