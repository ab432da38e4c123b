package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gedvault/gedvault/pkg/errors"
	"github.com/gedvault/gedvault/pkg/gedcom"
)

// DefaultIndexFile is the vault index note name.
const DefaultIndexFile = "Index.md"

// WriteIndex writes an alphabetical index note linking every person,
// grouped by last name initial. People without a last name collect under
// a "#" heading. Returns the index path.
func WriteIndex(idx *gedcom.Index, outDir, filename string) (string, error) {
	if filename == "" {
		filename = DefaultIndexFile
	}

	people := idx.SortedByName()

	var b strings.Builder
	b.WriteString("# Family Tree Index\n\n")
	fmt.Fprintf(&b, "Total individuals: %d\n\n", len(people))

	letter := ""
	for _, in := range people {
		l := "#"
		if in.Family != "" {
			l = strings.ToUpper(in.Family[:1])
		}
		if l != letter {
			letter = l
			fmt.Fprintf(&b, "\n## %s\n\n", letter)
		}
		if span := in.LifeSpan(); span != "" {
			fmt.Fprintf(&b, "- [[%s]] (%s)\n", in.NoteName(), span)
		} else {
			fmt.Fprintf(&b, "- [[%s]]\n", in.NoteName())
		}
	}

	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeWrite, err, "vault index")
	}
	return path, nil
}
