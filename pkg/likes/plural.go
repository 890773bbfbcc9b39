package likes

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// PluralForm is the template category picked for a count
type PluralForm int

// plural forms
const (
	FormZero PluralForm = iota
	FormOne
	FormMany
)

// String returns form name
func (f PluralForm) String() string {
	switch f {
	case FormZero:
		return "zero"
	case FormOne:
		return "one"
	default:
		return "many"
	}
}

// Pluralizer maps a count to a plural form
type Pluralizer func(count int64) PluralForm

// LocalePluralizer makes a Pluralizer from CLDR cardinal rules of the locale.
// Zero is always FormZero, CLDR "one" is FormOne and everything else is FormMany.
func LocalePluralizer(locale string) (Pluralizer, error) {
	if locale == "" {
		locale = "en"
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	return func(count int64) PluralForm {
		if count == 0 {
			return FormZero
		}
		if count < 0 {
			count = -count
		}
		if plural.Cardinal.MatchPlural(tag, int(count), 0, 0, 0, 0) == plural.One {
			return FormOne
		}
		return FormMany
	}, nil
}
