// Package vault writes the Obsidian vault artifacts: one markdown note
// per person plus an alphabetical index note linking them all.
//
// Notes use Obsidian conventions throughout: [[WikiLinks]] between
// people, visible inline fields ([Key:: value]) for core attributes, and
// hidden inline fields ((Key:: value)) for relationship metadata that
// Dataview queries can read without cluttering the rendered note.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/gedcom"
)

// eventNames maps GEDCOM event tags to note section headings.
var eventNames = map[string]string{
	"MARR": "Marriage",
	"OCCU": "Occupation",
	"EDUC": "Education",
	"RESI": "Residence",
	"BURI": "Burial",
}

// Generator writes person notes into an output directory.
type Generator struct {
	dir      *gedcom.Index
	outDir   string
	mediaDir string
}

// NewGenerator returns a generator writing notes for people in idx into
// outDir. mediaDir, when non-empty, is the vault subdirectory prepended
// to image paths.
func NewGenerator(idx *gedcom.Index, outDir, mediaDir string) (*Generator, error) {
	info, err := os.Stat(outDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "output directory %s", outDir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "output path %s is not a directory", outDir)
	}
	return &Generator{dir: idx, outDir: outDir, mediaDir: mediaDir}, nil
}

// WriteNote writes the markdown note for one person and returns its path.
func (g *Generator) WriteNote(in *gedcom.Individual) (string, error) {
	var b strings.Builder
	g.writeHeader(&b, in)
	g.writeAttributes(&b, in)
	g.writeEvents(&b, in)
	wroteFamilies := g.writeFamilies(&b, in)
	g.writeParents(&b, in)
	if !wroteFamilies {
		g.writeChildren(&b, in)
	}
	g.writeImages(&b, in)
	g.writeNotes(&b, in)

	path := filepath.Join(g.outDir, in.NoteName()+".md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, err, "note for %s", in.ID)
	}
	return path, nil
}

func (g *Generator) writeHeader(b *strings.Builder, in *gedcom.Individual) {
	fmt.Fprintf(b, "# %s\n\n", in.FullName())
}

func (g *Generator) writeAttributes(b *strings.Builder, in *gedcom.Individual) {
	b.WriteString("## Attributes\n")
	field(b, "ID", in.ID)
	field(b, "Name", in.FullName())
	if span := in.LifeSpan(); span != "" {
		field(b, "Lived", span)
	}
	if in.Sex() != "" {
		field(b, "Sex", in.Sex())
	}
	if birth, ok := in.Event("BIRT"); ok {
		field(b, "Born", birth.Date)
		field(b, "Place of birth", birth.Place)
	}
	if death, ok := in.Event("DEAT"); ok {
		field(b, "Passed away", death.Date)
		field(b, "Place of death", death.Place)
	}
	for _, key := range []string{"EYES", "HAIR", "HEIG"} {
		if v := in.Attributes[key]; v != "" {
			field(b, key[:1]+strings.ToLower(key[1:]), v)
		}
	}
	b.WriteString("\n")
}

func (g *Generator) writeEvents(b *strings.Builder, in *gedcom.Individual) {
	var events []gedcom.Event
	for _, ev := range in.Events {
		// Birth and death already appear under attributes.
		if ev.Kind != "BIRT" && ev.Kind != "DEAT" {
			events = append(events, ev)
		}
	}
	if len(events) == 0 {
		return
	}

	b.WriteString("## Life Events\n")
	for _, ev := range events {
		name := eventNames[ev.Kind]
		if name == "" {
			name = ev.Kind
		}
		fmt.Fprintf(b, "### %s\n", name)
		if ev.Date != "" {
			fmt.Fprintf(b, "- **Date**: %s\n", ev.Date)
		}
		if ev.Place != "" {
			fmt.Fprintf(b, "- **Place**: %s\n", ev.Place)
		}
		if ev.Details != "" {
			fmt.Fprintf(b, "- **Details**: %s\n", ev.Details)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (g *Generator) writeFamilies(b *strings.Builder, in *gedcom.Individual) bool {
	families := g.dir.SpouseFamilies(in.ID)
	if len(families) == 0 {
		return false
	}

	b.WriteString("## Families\n")
	n := 0
	for _, fam := range families {
		if fam.Partner == "" {
			continue
		}
		n++
		if len(families) > 1 {
			fmt.Fprintf(b, "### Marriage %d\n", n)
		} else {
			b.WriteString("### Marriage\n")
		}
		hiddenField(b, "Partner", wikiLink(g.dir.NoteName(fam.Partner)))
		if fam.MarriageDate != "" {
			hiddenField(b, "Marriage date", fam.MarriageDate)
		}
		if fam.MarriagePlace != "" {
			hiddenField(b, "Marriage place", fam.MarriagePlace)
		}
		if len(fam.Children) > 0 {
			b.WriteString("\n**Children:**\n")
			for _, child := range fam.Children {
				hiddenField(b, "Child", wikiLink(g.dir.NoteName(child)))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return true
}

func (g *Generator) writeParents(b *strings.Builder, in *gedcom.Individual) {
	parents := g.dir.Parents(in.ID)
	if len(parents) == 0 {
		return
	}
	b.WriteString("## Parents\n")
	for _, p := range parents {
		hiddenField(b, "Parent", wikiLink(p.NoteName()))
	}
	b.WriteString("\n")
}

func (g *Generator) writeChildren(b *strings.Builder, in *gedcom.Individual) {
	children := g.dir.Children(in.ID)
	if len(children) == 0 {
		return
	}
	b.WriteString("## Children\n")
	for _, c := range children {
		hiddenField(b, "Child", wikiLink(c.NoteName()))
	}
	b.WriteString("\n")
}

func (g *Generator) writeImages(b *strings.Builder, in *gedcom.Individual) {
	if len(in.Images) == 0 {
		return
	}
	b.WriteString("## Images\n")
	for _, img := range in.Images {
		g.writeImage(b, img)
	}
	b.WriteString("\n")
}

func (g *Generator) writeImage(b *strings.Builder, img gedcom.Image) {
	title := img.Title
	if title == "" {
		title = "Image"
	}
	path := img.File
	if g.mediaDir != "" {
		path = g.mediaDir + "/" + path
	}
	fmt.Fprintf(b, "![%s](%s)\n\n", title, path)
}

func (g *Generator) writeNotes(b *strings.Builder, in *gedcom.Individual) {
	if len(in.Notes) == 0 && len(in.Stories) == 0 {
		return
	}
	b.WriteString("## Notes\n")
	for _, note := range in.Notes {
		fmt.Fprintf(b, "%s\n\n", note)
	}
	for _, st := range in.Stories {
		if st.Title != "" {
			fmt.Fprintf(b, "### %s\n\n", st.Title)
		}
		if st.Description != "" {
			fmt.Fprintf(b, "*%s*\n\n", st.Description)
		}
		for _, sec := range st.Sections {
			if sec.Subtitle != "" {
				fmt.Fprintf(b, "#### %s\n\n", sec.Subtitle)
			}
			if sec.Text != "" {
				fmt.Fprintf(b, "%s\n\n", sec.Text)
			}
			for _, img := range sec.Images {
				g.writeImage(b, img)
			}
		}
	}
}

func field(b *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(b, "[%s:: %s]\n", key, value)
	}
}

func hiddenField(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "(%s:: %s)\n", key, value)
}

func wikiLink(text string) string {
	return fmt.Sprintf("[[%s]]", text)
}
