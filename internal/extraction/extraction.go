// Package extraction loads page extractions produced by external markup and
// code parsers.
package extraction

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"

	"github.com/scan-io-git/endpointmap/internal/git"
	"github.com/scan-io-git/endpointmap/pkg/framework"
	"github.com/scan-io-git/endpointmap/pkg/framework/registry"
	"github.com/scan-io-git/endpointmap/pkg/shared/files"
)

// File is the on-disk layout of a parser output, either YAML or JSON
// (picked by the ".json" extension).
type File struct {
	Root      string                     `yaml:"root" json:"root"`
	Framework string                     `yaml:"framework" json:"framework"`
	Pages     []framework.PageExtraction `yaml:"pages" json:"pages"`
}

// Load reads and validates the extraction file at path. Relative roots and page
// files are resolved against the directory holding the file; a missing root
// falls back to the enclosing repository worktree.
func Load(path string, logger hclog.Logger) (*File, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	expanded, err := files.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand extraction path %q: %w", path, err)
	}
	if err := files.ValidatePath(expanded); err != nil {
		return nil, fmt.Errorf("invalid extraction file: %w", err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read extraction file %q: %w", expanded, err)
	}

	var f File
	if err := decode(expanded, data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode extraction file %q: %w", expanded, err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("extraction file %q: %w", expanded, err)
	}

	dir := filepath.Dir(expanded)
	switch {
	case f.Root == "":
		f.Root = git.RepositoryRoot(dir, logger)
	case !filepath.IsAbs(f.Root):
		f.Root = filepath.Join(dir, f.Root)
	}
	for i := range f.Pages {
		if file := f.Pages[i].File; file != "" && !filepath.IsAbs(file) {
			f.Pages[i].File = filepath.Join(dir, file)
		}
	}

	logger.Debug("extractions loaded", "path", expanded, "pages", len(f.Pages), "root", f.Root)
	return &f, nil
}

func decode(path string, data []byte, f *File) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Unmarshal(data, f)
	}
	return yaml.Unmarshal(data, f)
}

func (f *File) validate() error {
	for i, p := range f.Pages {
		if strings.TrimSpace(p.Identity) == "" {
			return fmt.Errorf("page %d has no identity", i)
		}
	}
	return nil
}

// Endpoints builds the endpoints of every page for frameworkType. With
// strictPaths a page outside of the root fails the whole build.
func (f *File) Endpoints(frameworkType framework.Type, strictPaths bool, logger hclog.Logger) ([]framework.Endpoint, error) {
	return registry.BuildEndpoints(frameworkType, f.Root, f.Pages, strictPaths, logger)
}

// FrameworkType parses the declared framework, falling back to def when the
// file does not name one.
func (f *File) FrameworkType(def framework.Type) (framework.Type, error) {
	if f.Framework == "" {
		return def, nil
	}
	return framework.ParseType(f.Framework)
}
