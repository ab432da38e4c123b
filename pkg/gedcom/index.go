package gedcom

import (
	"sort"

	"github.com/gedvault/gedvault/pkg/tree"
)

// Index is a relationship lookup over a parsed file. It satisfies the
// tree layout engine's index contract and the canvas emitter's source
// contract, so a single value feeds the whole pipeline.
type Index struct {
	file *File
	ids  []string
}

// NewIndex builds an index over f. Person identifiers are kept in
// document order.
func NewIndex(f *File) *Index {
	ids := make([]string, 0, len(f.Individuals))
	for _, in := range f.Individuals {
		ids = append(ids, in.ID)
	}
	return &Index{file: f, ids: ids}
}

// IDs returns all person identifiers in document order. The slice is
// shared; callers must not modify it.
func (x *Index) IDs() []string {
	return x.ids
}

// Person returns the individual with the given identifier.
func (x *Index) Person(id string) (*Individual, bool) {
	return x.file.Person(id)
}

// FamilyCount returns the number of family records in the file.
func (x *Index) FamilyCount() int {
	return len(x.file.Families)
}

// Contains reports whether the identifier names a known person.
func (x *Index) Contains(id string) bool {
	_, ok := x.file.Person(id)
	return ok
}

// Sex maps the person's SEX tag onto the layout engine's sex type.
func (x *Index) Sex(id string) tree.Sex {
	in, ok := x.file.Person(id)
	if !ok {
		return tree.SexUnknown
	}
	switch in.Sex() {
	case "M":
		return tree.SexMale
	case "F":
		return tree.SexFemale
	default:
		return tree.SexUnknown
	}
}

// ChildFamilies returns the families the person is a child of, with
// parent identifiers filtered down to people present in the file.
func (x *Index) ChildFamilies(id string) []tree.ChildFamily {
	in, ok := x.file.Person(id)
	if !ok {
		return nil
	}
	var out []tree.ChildFamily
	for _, famID := range in.famc {
		fam, ok := x.file.Family(famID)
		if !ok {
			continue
		}
		cf := tree.ChildFamily{}
		if x.Contains(fam.Husband) {
			cf.Father = fam.Husband
		}
		if x.Contains(fam.Wife) {
			cf.Mother = fam.Wife
		}
		out = append(out, cf)
	}
	return out
}

// SpouseFamilies returns the families the person is a partner in. The
// partner is the family's other spouse, which may be empty for
// single-parent families.
func (x *Index) SpouseFamilies(id string) []tree.SpouseFamily {
	in, ok := x.file.Person(id)
	if !ok {
		return nil
	}
	var out []tree.SpouseFamily
	for _, famID := range in.fams {
		fam, ok := x.file.Family(famID)
		if !ok {
			continue
		}
		sf := tree.SpouseFamily{
			MarriageDate:  fam.MarriageDate,
			MarriagePlace: fam.MarriagePlace,
		}
		partner := fam.Husband
		if partner == id {
			partner = fam.Wife
		}
		if x.Contains(partner) {
			sf.Partner = partner
		}
		for _, child := range fam.Children {
			if x.Contains(child) {
				sf.Children = append(sf.Children, child)
			}
		}
		out = append(out, sf)
	}
	return out
}

// Parents returns the person's parent individuals, fathers first.
func (x *Index) Parents(id string) []*Individual {
	var out []*Individual
	for _, cf := range x.ChildFamilies(id) {
		for _, pid := range []string{cf.Father, cf.Mother} {
			if in, ok := x.file.Person(pid); ok {
				out = append(out, in)
			}
		}
	}
	return out
}

// Children returns the person's children across all families, in
// record order.
func (x *Index) Children(id string) []*Individual {
	var out []*Individual
	seen := make(map[string]bool)
	for _, sf := range x.SpouseFamilies(id) {
		for _, cid := range sf.Children {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			if in, ok := x.file.Person(cid); ok {
				out = append(out, in)
			}
		}
	}
	return out
}

// NoteName returns the person's note title.
func (x *Index) NoteName(id string) string {
	in, ok := x.file.Person(id)
	if !ok {
		return id
	}
	return in.NoteName()
}

// ImageFile returns the person's first attached media path, or "".
func (x *Index) ImageFile(id string) string {
	in, ok := x.file.Person(id)
	if !ok {
		return ""
	}
	return in.FirstImage()
}

// SortedByName returns all individuals ordered by family name, given
// name, then identifier. Used by pickers and the vault index.
func (x *Index) SortedByName() []*Individual {
	out := make([]*Individual, len(x.file.Individuals))
	copy(out, x.file.Individuals)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		if out[i].Given != out[j].Given {
			return out[i].Given < out[j].Given
		}
		return out[i].ID < out[j].ID
	})
	return out
}
