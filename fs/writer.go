package fs

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/xxhash"
)

var _ docmap.ModuleWriter = (*Writer)(nil)

// Writer writes merged module structures as JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// FileName returns the output file name for siteURL. The name is stable
// for a given URL.
func FileName(siteURL string) string {
	return "module_structure_" + xxhash.Suffix(siteURL) + ".json"
}

// WriteModules writes modules as indented JSON and returns the file path.
// An existing file for the same URL is replaced.
func (w *Writer) WriteModules(ctx context.Context, siteURL string, modules []docmap.MergedModule) (string, error) {
	if modules == nil {
		modules = []docmap.MergedModule{}
	}
	data, err := json.MarshalIndent(modules, "", "  ")
	if err != nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "encode modules: %v", err)
	}

	path := filepath.Join(w.baseDir, FileName(siteURL))
	if err := writeFileAtomic(w.baseDir, path, append(data, '\n')); err != nil {
		return "", docmap.Errorf(docmap.EINTERNAL, "write %s: %v", path, err)
	}
	return path, nil
}
