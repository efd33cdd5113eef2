// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/contact-finder/pkg/types"
)

// Header is the fixed column order of every report.
var Header = []string{"Company", "Name", "Title (Inferred)", "Email (Guessed)", "Profile URL", "Group"}

var filenameReplacer = strings.NewReplacer(" ", "_", "/", "_")

// Filename returns the report file name for company on date, e.g.
// "Acme_Inc_14-10-2026_Contact.csv".
func Filename(company string, date time.Time) string {
	return fmt.Sprintf("%s_%s_Contact.csv", filenameReplacer.Replace(company), date.Format("02-01-2006"))
}

// WriteCSV writes the header and one row per contact to w.
func WriteCSV(w io.Writer, contacts []types.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range contacts {
		row := []string{c.Company, c.Name, c.TitleSnippet, c.InferredEmail, c.ProfileURL, string(c.Group)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", c.ProfileURL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes contacts to path through a temporary file in the same
// directory, replacing any existing file only once the write succeeds.
func WriteFile(path string, contacts []types.Contact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".contacts-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := WriteCSV(tmp, contacts); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}
