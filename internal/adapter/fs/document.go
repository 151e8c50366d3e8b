package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"circuitdoc/internal/domain"
)

// DocumentPath maps a slash-separated source path to its document path under dir,
// replacing the extension with .md.
func DocumentPath(dir, relPath string) string {
	rel := strings.TrimSuffix(relPath, path.Ext(relPath)) + ".md"
	return filepath.Join(dir, filepath.FromSlash(rel))
}

// WriteDocument writes the markdown rendering of doc to dest, creating parent
// directories as needed.
func WriteDocument(dest string, doc domain.Document) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(doc.Markdown()), 0644)
}
