package likes

// MetaKey is the metadata key holding the like counter of a post
const MetaKey = "_be_like_content"

// CountPlaceholder is replaced by the decimal count in display templates
const CountPlaceholder = "{count}"

// defaultWidgetLimit is the number of rows in the most liked widget
const defaultWidgetLimit = 20

// Settings defines display templates and the post types that can be liked
type Settings struct {
	ZeroText        string   // shown when a post has no likes
	OneText         string   // shown for the "one" plural form
	ManyText        string   // shown for every other plural form
	PostTypes       []string // post types eligible for likes
	Locale          string   // BCP 47 tag selecting the plural rules
	AtomicIncrement bool     // use the store increment primitive when it has one
	WidgetLimit     int      // rows in the most liked widget
}

// DefaultSettings returns settings used when nothing is configured
func DefaultSettings() Settings {
	return Settings{
		ZeroText:        "Like the post? Give it a +1",
		OneText:         CountPlaceholder,
		ManyText:        CountPlaceholder,
		PostTypes:       []string{"post"},
		Locale:          "en",
		AtomicIncrement: true,
		WidgetLimit:     defaultWidgetLimit,
	}
}
