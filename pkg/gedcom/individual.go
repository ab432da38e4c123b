package gedcom

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Individual is one INDI record with its parsed names, events, media,
// notes, and family memberships.
type Individual struct {
	ID     string
	Given  string
	Family string

	Events     []Event
	Images     []Image
	Notes      []string
	Stories    []Story
	Attributes map[string]string

	sexTag string
	famc   []string
	fams   []string
}

var (
	yearRe  = regexp.MustCompile(`\b(\d{4})\b`)
	titler  = cases.Title(language.Und)
	badFile = strings.NewReplacer("/", " ", "\\", " ", ":", " ", "*", " ", "?", " ", "\"", " ", "<", " ", ">", " ", "|", " ")
)

// FullName returns "Given Family", title-cased, falling back to the record
// identifier when both name parts are missing.
func (in *Individual) FullName() string {
	name := strings.TrimSpace(titler.String(strings.ToLower(strings.TrimSpace(in.Given + " " + in.Family))))
	if name == "" {
		return in.ID
	}
	return name
}

// NoteName returns the person's note title: "Family Given BirthYear" with
// empty parts dropped, title-cased, and filesystem-unsafe characters
// replaced. Distinct people with identical names are disambiguated by the
// birth year; fully anonymous records fall back to the identifier.
func (in *Individual) NoteName() string {
	parts := make([]string, 0, 3)
	if in.Family != "" {
		parts = append(parts, in.Family)
	}
	if in.Given != "" {
		parts = append(parts, in.Given)
	}
	if y := in.BirthYear(); y != "" {
		parts = append(parts, y)
	}
	if len(parts) == 0 {
		return in.ID
	}
	name := titler.String(strings.ToLower(strings.Join(parts, " ")))
	return strings.Join(strings.Fields(badFile.Replace(name)), " ")
}

// Sex reports the record's SEX tag: "M", "F", or "" when absent.
func (in *Individual) Sex() string {
	return in.sexTag
}

// Event returns the first event of the given kind.
func (in *Individual) Event(kind string) (Event, bool) {
	for _, ev := range in.Events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}

// BirthYear extracts the four-digit year from the birth date, or "".
func (in *Individual) BirthYear() string {
	return in.eventYear("BIRT")
}

// DeathYear extracts the four-digit year from the death date, or "".
func (in *Individual) DeathYear() string {
	return in.eventYear("DEAT")
}

func (in *Individual) eventYear(kind string) string {
	ev, ok := in.Event(kind)
	if !ok {
		return ""
	}
	if m := yearRe.FindStringSubmatch(ev.Date); m != nil {
		return m[1]
	}
	return ""
}

// LifeSpan formats the person's life span as "1820-1891", "1820-", "-1891",
// or "" when no year is known.
func (in *Individual) LifeSpan() string {
	b, d := in.BirthYear(), in.DeathYear()
	if b == "" && d == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s", b, d)
}

// HasImage reports whether any media is attached.
func (in *Individual) HasImage() bool {
	return len(in.Images) > 0
}

// FirstImage returns the first attached media file path, or "".
func (in *Individual) FirstImage() string {
	if len(in.Images) == 0 {
		return ""
	}
	return in.Images[0].File
}
