// Package links loads the quick-link list from a local file. JSON is the
// native format; files ending in .yaml or .yml are decoded as YAML.
package links

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Name is the collector and widget identifier.
const Name = "links"

// DefaultPath is the link file used when none is configured.
const DefaultPath = "data/links.json"

// Link is one quick-link record.
type Link struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Icon    string `json:"icon" yaml:"icon"`
	Section string `json:"section" yaml:"section"`
}

// Loader reads the link file on every Collect.
type Loader struct {
	path     string
	interval time.Duration

	mu      sync.Mutex
	healthy bool
}

// New returns a loader for path.
func New(path string, interval time.Duration) *Loader {
	if path == "" {
		path = DefaultPath
	}
	return &Loader{path: path, interval: interval, healthy: true}
}

// Name returns the collector identifier.
func (l *Loader) Name() string { return Name }

// Interval returns how often the file is re-read.
func (l *Loader) Interval() time.Duration { return l.interval }

// Path returns the file being read.
func (l *Loader) Path() string { return l.path }

// Healthy returns whether the last read succeeded.
func (l *Loader) Healthy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.healthy
}

// Collect reads and decodes the file, returning []Link in file order.
func (l *Loader) Collect(ctx context.Context) (interface{}, error) {
	links, err := l.Load(ctx)
	l.mu.Lock()
	l.healthy = err == nil
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return links, nil
}

// Load reads and decodes the file.
func (l *Loader) Load(ctx context.Context) ([]Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read links: %w", err)
	}
	return Decode(l.path, data)
}

// Decode parses data according to the extension of name.
func Decode(name string, data []byte) ([]Link, error) {
	var links []Link
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &links); err != nil {
			return nil, fmt.Errorf("parse links %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &links); err != nil {
			return nil, fmt.Errorf("parse links %s: %w", name, err)
		}
	}
	if links == nil {
		return nil, fmt.Errorf("parse links %s: no link list", name)
	}
	return links, nil
}
