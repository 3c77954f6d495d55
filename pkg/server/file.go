package server

import (
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/tinyland/lab/browserhome/pkg/app"
)

// WriteHTMLFile writes the snapshot's page to path. The write is atomic:
// content goes to a temporary file first, then is renamed into place so a
// web server reading the file never sees a partial page.
func WriteHTMLFile(path string, snap app.Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create page directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".browserhome-*.html")
	if err != nil {
		return fmt.Errorf("create temp page: %w", err)
	}
	name := tmp.Name()

	if _, err := tmp.WriteString(snap.HTML); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write temp page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp page: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return fmt.Errorf("chmod temp page: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename page: %w", err)
	}
	return nil
}
