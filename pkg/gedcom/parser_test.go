package gedcom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleGedcom = `0 HEAD
1 SOUR test
0 @I1@ INDI
1 NAME John /Doe/
1 SEX M
1 BIRT
2 DATE 12 MAR 1820
2 PLAC Springfield
1 DEAT
2 DATE 1891
1 OCCU Carpenter
2 DATE 1850
1 FAMS @F1@
1 NOTE @N1@
1 OBJE @O1@
0 @I2@ INDI
1 NAME Jane /Miller/
1 SEX F
1 FAMS @F1@
0 @I3@ INDI
1 NAME Billy /Doe/
1 FAMC @F1@
1 NOTE Inline note
2 CONT second line
2 CONC  continued
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
1 MARR
2 DATE 5 JUN 1845
2 PLAC Shelbyville
0 @N1@ NOTE A shared note
1 CONT with a second line
0 @O1@ OBJE
1 FILE john.jpg
1 TITL Portrait
1 FORM jpeg
0 TRLR
`

func parseSample(t *testing.T) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(sampleGedcom))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestParseIndividuals(t *testing.T) {
	f := parseSample(t)

	if len(f.Individuals) != 3 {
		t.Fatalf("individuals = %d, want 3", len(f.Individuals))
	}

	john, ok := f.Person("I1")
	if !ok {
		t.Fatal("I1 missing")
	}
	if john.Given != "John" || john.Family != "Doe" {
		t.Errorf("name = %q %q, want John Doe", john.Given, john.Family)
	}
	if john.Sex() != "M" {
		t.Errorf("sex = %q, want M", john.Sex())
	}

	birth, ok := john.Event("BIRT")
	if !ok {
		t.Fatal("no birth event")
	}
	if birth.Date != "12 MAR 1820" || birth.Place != "Springfield" {
		t.Errorf("birth = %+v", birth)
	}

	occ, ok := john.Event("OCCU")
	if !ok || occ.Details != "Carpenter" || occ.Date != "1850" {
		t.Errorf("occupation = %+v, ok=%v", occ, ok)
	}
}

func TestParseFamilies(t *testing.T) {
	f := parseSample(t)

	fam, ok := f.Family("F1")
	if !ok {
		t.Fatal("F1 missing")
	}
	if fam.Husband != "I1" || fam.Wife != "I2" {
		t.Errorf("partners = %s, %s, want I1, I2", fam.Husband, fam.Wife)
	}
	if len(fam.Children) != 1 || fam.Children[0] != "I3" {
		t.Errorf("children = %v, want [I3]", fam.Children)
	}
	if fam.MarriageDate != "5 JUN 1845" || fam.MarriagePlace != "Shelbyville" {
		t.Errorf("marriage = %q at %q", fam.MarriageDate, fam.MarriagePlace)
	}
}

func TestParseNoteResolution(t *testing.T) {
	f := parseSample(t)

	john, _ := f.Person("I1")
	if len(john.Notes) != 1 || john.Notes[0] != "A shared note\nwith a second line" {
		t.Errorf("referenced note = %q", john.Notes)
	}

	billy, _ := f.Person("I3")
	if len(billy.Notes) != 1 {
		t.Fatalf("inline notes = %d, want 1", len(billy.Notes))
	}
	if want := "Inline note\nsecond line continued"; billy.Notes[0] != want {
		t.Errorf("inline note = %q, want %q", billy.Notes[0], want)
	}
}

func TestParseObjectResolution(t *testing.T) {
	f := parseSample(t)

	john, _ := f.Person("I1")
	if !john.HasImage() {
		t.Fatal("no image resolved")
	}
	img := john.Images[0]
	if img.File != "john.jpg" || img.Title != "Portrait" || img.Format != "jpeg" {
		t.Errorf("image = %+v", img)
	}
}

func TestParseStories(t *testing.T) {
	const doc = `0 @I1@ INDI
1 NAME Ada /Quinn/
1 _STO @S1@
0 @S1@ _STO
1 TITL The Crossing
1 DESC Emigration, 1887
1 @S2@ _STS
2 TITL Leaving Hamburg
2 TEXT Boarded the Suevia in spring.
3 CONT The passage took two weeks.
1 @S3@ _STS
2 TITL Arrival
2 OBJE @O1@
1 @S4@ _STS
2 OBJE @O1@
0 @O1@ OBJE
1 FILE pier.jpg
1 TITL The pier
0 TRLR
`
	f, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	ada, _ := f.Person("I1")
	if len(ada.Stories) != 1 {
		t.Fatalf("stories = %d, want 1", len(ada.Stories))
	}
	st := ada.Stories[0]
	if st.Title != "The Crossing" || st.Description != "Emigration, 1887" {
		t.Errorf("story = %q / %q", st.Title, st.Description)
	}
	// The third section has neither subtitle nor text and is dropped.
	if len(st.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(st.Sections))
	}
	if st.Sections[0].Subtitle != "Leaving Hamburg" {
		t.Errorf("subtitle = %q", st.Sections[0].Subtitle)
	}
	if want := "Boarded the Suevia in spring.\nThe passage took two weeks."; st.Sections[0].Text != want {
		t.Errorf("text = %q, want %q", st.Sections[0].Text, want)
	}
	if len(st.Sections[1].Images) != 1 || st.Sections[1].Images[0].File != "pier.jpg" {
		t.Errorf("section images = %+v", st.Sections[1].Images)
	}
}

func TestParseMalformedLine(t *testing.T) {
	_, err := Parse(strings.NewReader("0 HEAD\nBROKEN\n"))
	if !errors.Is(err, ErrMalformedLine) {
		t.Errorf("err = %v, want ErrMalformedLine", err)
	}

	_, err = Parse(strings.NewReader("0 HEAD\n5 DEEP nested\n"))
	if !errors.Is(err, ErrBadNesting) {
		t.Errorf("err = %v, want ErrBadNesting", err)
	}
}

func TestParseFileCarriageReturns(t *testing.T) {
	// Classic Mac exports separate lines with bare CR.
	content := strings.ReplaceAll("0 @I1@ INDI\n1 NAME Mac /User/\n0 TRLR\n", "\n", "\r")
	path := filepath.Join(t.TempDir(), "mac.ged")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	in, ok := f.Person("I1")
	if !ok || in.Given != "Mac" {
		t.Errorf("person = %+v, ok=%v", in, ok)
	}
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		value  string
		given  string
		family string
	}{
		{"John /Doe/", "John", "Doe"},
		{"John", "John", ""},
		{"/Doe/", "", "Doe"},
		{"Mary Ann /van Berg/", "Mary Ann", "van Berg"},
		{"John /Doe", "John", "Doe"},
		{"", "", ""},
	}
	for _, tt := range tests {
		given, family := splitName(tt.value)
		if given != tt.given || family != tt.family {
			t.Errorf("splitName(%q) = %q, %q, want %q, %q", tt.value, given, family, tt.given, tt.family)
		}
	}
}
