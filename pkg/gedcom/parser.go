// Package gedcom parses GEDCOM genealogy files into an in-memory person
// and family graph, and exposes a relationship index over it.
//
// The parser understands the line-oriented GEDCOM grammar
// (LEVEL [@XREF@] TAG [value]) and the record types this tool needs:
// individuals (INDI) with names, sex, life events, media, notes, and
// narrative stories (_STO), and families (FAM) with partners, marriage
// facts, and children. Unknown tags are preserved in the record tree and
// ignored, so files from arbitrary genealogy programs parse without
// errors.
//
// Classic Mac (CR-only) line endings, still produced by some macOS
// genealogy exporters, are detected and repaired transparently.
package gedcom

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrMalformedLine is returned when a line does not match the
	// "LEVEL [@XREF@] TAG [value]" grammar.
	ErrMalformedLine = errors.New("malformed gedcom line")

	// ErrBadNesting is returned when a line's level skips more than one
	// step deeper than its predecessor.
	ErrBadNesting = errors.New("invalid gedcom level nesting")
)

// Event is one life event of an individual: the GEDCOM kind tag plus
// optional date, place, and free-form detail value.
type Event struct {
	Kind    string
	Date    string
	Place   string
	Details string
}

// Image is a media reference attached to an individual.
type Image struct {
	File   string
	Title  string
	Format string
}

// Story is a long-form narrative attached to an individual. Some
// genealogy programs (MobileFamilyTree among them) export these as
// custom _STO records holding titled _STS sections.
type Story struct {
	Title       string
	Description string
	Sections    []StorySection
}

// StorySection is one passage of a story.
type StorySection struct {
	Subtitle string
	Text     string
	Images   []Image
}

// Family is one family record: two optional partners, marriage facts, and
// the children in record order.
type Family struct {
	ID            string
	Husband       string
	Wife          string
	Children      []string
	MarriageDate  string
	MarriagePlace string
}

// File is a parsed GEDCOM document.
type File struct {
	// Individuals in document order.
	Individuals []*Individual
	// Families in document order.
	Families []*Family

	individuals map[string]*Individual
	families    map[string]*Family
}

// Person returns the individual with the given identifier.
func (f *File) Person(id string) (*Individual, bool) {
	in, ok := f.individuals[id]
	return in, ok
}

// Family returns the family record with the given identifier.
func (f *File) Family(id string) (*Family, bool) {
	fam, ok := f.families[id]
	return fam, ok
}

// record is one node of the raw GEDCOM record tree.
type record struct {
	xref     string
	tag      string
	value    string
	children []*record
}

// child returns the first child record with the given tag.
func (r *record) child(tag string) (*record, bool) {
	for _, c := range r.children {
		if c.tag == tag {
			return c, true
		}
	}
	return nil, false
}

// childValue returns the value of the first child with the given tag, or "".
func (r *record) childValue(tag string) string {
	if c, ok := r.child(tag); ok {
		return c.value
	}
	return ""
}

// text returns the record value with CONT/CONC continuations applied:
// CONT starts a new line, CONC concatenates.
func (r *record) text() string {
	var b strings.Builder
	b.WriteString(r.value)
	for _, c := range r.children {
		switch c.tag {
		case "CONT":
			b.WriteString("\n")
			b.WriteString(c.value)
		case "CONC":
			b.WriteString(c.value)
		}
	}
	return b.String()
}

// ParseFile reads and parses the GEDCOM file at path.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(normalizeLineEndings(data)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// Parse reads a GEDCOM document from r.
func Parse(r io.Reader) (*File, error) {
	roots, err := parseRecords(r)
	if err != nil {
		return nil, err
	}

	f := &File{
		individuals: make(map[string]*Individual),
		families:    make(map[string]*Family),
	}

	// Standalone NOTE, OBJE, and _STO records, resolvable by xref from
	// individual-level references.
	notes := make(map[string]string)
	objects := make(map[string]Image)
	stories := make(map[string]*record)
	for _, rec := range roots {
		switch rec.tag {
		case "NOTE":
			if rec.xref != "" {
				notes[rec.xref] = rec.text()
			}
		case "OBJE":
			if rec.xref != "" {
				objects[rec.xref] = imageFromRecord(rec)
			}
		case "_STO":
			if rec.xref != "" {
				stories[rec.xref] = rec
			}
		}
	}

	for _, rec := range roots {
		switch rec.tag {
		case "INDI":
			in := individualFromRecord(rec, notes, objects, stories)
			f.Individuals = append(f.Individuals, in)
			f.individuals[in.ID] = in
		case "FAM":
			fam := familyFromRecord(rec)
			f.Families = append(f.Families, fam)
			f.families[fam.ID] = fam
		}
	}

	return f, nil
}

// parseRecords scans lines and assembles the level-0 record trees.
func parseRecords(r io.Reader) ([]*record, error) {
	var (
		roots []*record
		stack []*record
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimRight(scanner.Text(), "\r")
		raw = strings.TrimPrefix(raw, "\ufeff")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		level, rec, err := parseLine(raw)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if level > len(stack) {
			return nil, fmt.Errorf("line %d: %w: level %d after depth %d", lineNo, ErrBadNesting, level, len(stack))
		}

		stack = stack[:level]
		if level == 0 {
			roots = append(roots, rec)
		} else {
			parent := stack[level-1]
			parent.children = append(parent.children, rec)
		}
		stack = append(stack, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return roots, nil
}

// parseLine splits one line into level, optional xref, tag, and value.
func parseLine(raw string) (int, *record, error) {
	fields := strings.SplitN(strings.TrimLeft(raw, " \t"), " ", 3)
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("%w: %q", ErrMalformedLine, raw)
	}

	level, err := strconv.Atoi(fields[0])
	if err != nil || level < 0 {
		return 0, nil, fmt.Errorf("%w: bad level in %q", ErrMalformedLine, raw)
	}

	rec := &record{}
	rest := fields[1:]
	if strings.HasPrefix(rest[0], "@") && strings.HasSuffix(rest[0], "@") {
		rec.xref = strings.Trim(rest[0], "@")
		if len(rest) < 2 || rest[1] == "" {
			return 0, nil, fmt.Errorf("%w: missing tag in %q", ErrMalformedLine, raw)
		}
		rest = strings.SplitN(rest[1], " ", 2)
	}

	rec.tag = rest[0]
	if len(rest) > 1 {
		rec.value = rest[1]
	}
	return level, rec, nil
}

// normalizeLineEndings converts classic Mac CR-only line endings to LF.
// Files containing any LF are left untouched.
func normalizeLineEndings(data []byte) []byte {
	if bytes.ContainsRune(data, '\n') || !bytes.ContainsRune(data, '\r') {
		return data
	}
	return bytes.ReplaceAll(data, []byte{'\r'}, []byte{'\n'})
}

// eventTags are the life event kinds carried over into Individual.Events.
var eventTags = map[string]bool{
	"BIRT": true,
	"DEAT": true,
	"MARR": true,
	"OCCU": true,
	"EDUC": true,
	"RESI": true,
	"BURI": true,
}

// attributeTags are physical attribute kinds some genealogy programs emit.
var attributeTags = map[string]bool{
	"EYES": true,
	"HAIR": true,
	"HEIG": true,
}

func individualFromRecord(rec *record, notes map[string]string, objects map[string]Image, stories map[string]*record) *Individual {
	in := &Individual{ID: rec.xref}

	for _, c := range rec.children {
		switch {
		case c.tag == "NAME":
			if in.Given == "" && in.Family == "" {
				in.Given, in.Family = splitName(c.value)
			}
		case c.tag == "SEX":
			in.sexTag = strings.ToUpper(strings.TrimSpace(c.value))
		case eventTags[c.tag]:
			in.Events = append(in.Events, Event{
				Kind:    c.tag,
				Date:    c.childValue("DATE"),
				Place:   c.childValue("PLAC"),
				Details: c.value,
			})
		case attributeTags[c.tag]:
			if in.Attributes == nil {
				in.Attributes = make(map[string]string)
			}
			in.Attributes[c.tag] = c.value
		case c.tag == "FAMC":
			in.famc = append(in.famc, strings.Trim(c.value, "@"))
		case c.tag == "FAMS":
			in.fams = append(in.fams, strings.Trim(c.value, "@"))
		case c.tag == "OBJE":
			if img, ok := resolveImage(c, objects); ok {
				in.Images = append(in.Images, img)
			}
		case c.tag == "NOTE":
			if note := resolveNote(c, notes); note != "" {
				in.Notes = append(in.Notes, note)
			}
		case c.tag == "_STO":
			if st, ok := resolveStory(c, stories, objects); ok {
				in.Stories = append(in.Stories, st)
			}
		}
	}

	return in
}

// splitName splits a GEDCOM name value ("Given /Surname/ suffix") into
// given and family parts.
func splitName(value string) (given, family string) {
	start := strings.Index(value, "/")
	if start < 0 {
		return strings.TrimSpace(value), ""
	}
	given = strings.TrimSpace(value[:start])
	rest := value[start+1:]
	if end := strings.Index(rest, "/"); end >= 0 {
		family = strings.TrimSpace(rest[:end])
	} else {
		family = strings.TrimSpace(rest)
	}
	return given, family
}

func resolveImage(c *record, objects map[string]Image) (Image, bool) {
	ref := strings.TrimSpace(c.value)
	if strings.HasPrefix(ref, "@") && strings.HasSuffix(ref, "@") {
		img, ok := objects[strings.Trim(ref, "@")]
		return img, ok
	}
	img := imageFromRecord(c)
	return img, img.File != ""
}

func imageFromRecord(rec *record) Image {
	return Image{
		File:   rec.childValue("FILE"),
		Title:  rec.childValue("TITL"),
		Format: rec.childValue("FORM"),
	}
}

// resolveStory follows an individual's _STO reference to the standalone
// story record. Sections without a subtitle or text are dropped, as are
// stories carrying no title and no sections at all.
func resolveStory(c *record, stories map[string]*record, objects map[string]Image) (Story, bool) {
	ref := strings.TrimSpace(c.value)
	if !strings.HasPrefix(ref, "@") || !strings.HasSuffix(ref, "@") {
		return Story{}, false
	}
	rec, ok := stories[strings.Trim(ref, "@")]
	if !ok {
		return Story{}, false
	}

	st := Story{
		Title:       rec.childValue("TITL"),
		Description: rec.childValue("DESC"),
	}
	for _, sec := range rec.children {
		if sec.tag != "_STS" {
			continue
		}
		s := StorySection{Subtitle: sec.childValue("TITL")}
		if txt, ok := sec.child("TEXT"); ok {
			s.Text = strings.TrimSpace(txt.text())
		}
		for _, sc := range sec.children {
			if sc.tag == "OBJE" {
				if img, ok := resolveImage(sc, objects); ok {
					s.Images = append(s.Images, img)
				}
			}
		}
		if s.Subtitle != "" || s.Text != "" {
			st.Sections = append(st.Sections, s)
		}
	}
	if st.Title == "" && len(st.Sections) == 0 {
		return Story{}, false
	}
	return st, true
}

func resolveNote(c *record, notes map[string]string) string {
	ref := strings.TrimSpace(c.value)
	if strings.HasPrefix(ref, "@") && strings.HasSuffix(ref, "@") {
		return strings.TrimSpace(notes[strings.Trim(ref, "@")])
	}
	return strings.TrimSpace(c.text())
}

func familyFromRecord(rec *record) *Family {
	fam := &Family{ID: rec.xref}
	for _, c := range rec.children {
		switch c.tag {
		case "HUSB":
			fam.Husband = strings.Trim(c.value, "@")
		case "WIFE":
			fam.Wife = strings.Trim(c.value, "@")
		case "CHIL":
			fam.Children = append(fam.Children, strings.Trim(c.value, "@"))
		case "MARR":
			fam.MarriageDate = c.childValue("DATE")
			fam.MarriagePlace = c.childValue("PLAC")
		}
	}
	return fam
}
