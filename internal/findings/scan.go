package findings

import (
	"github.com/google/uuid"
)

// Scan is one scanner run with its findings. FilePathRoot and URLPathRoot are
// written by translator construction; callers serialize that step per scan.
type Scan struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Scanner      string     `json:"scanner"`
	FilePathRoot string     `json:"file_path_root,omitempty"`
	URLPathRoot  string     `json:"url_path_root,omitempty"`
	Findings     []*Finding `json:"findings"`
}

// NewScan creates a scan with a fresh identifier.
func NewScan(name, scanner string, fs []*Finding) *Scan {
	return &Scan{
		ID:       uuid.NewString(),
		Name:     name,
		Scanner:  scanner,
		Findings: fs,
	}
}

// SetFilePathRoot overwrites the filesystem root.
func (s *Scan) SetFilePathRoot(root string) {
	s.FilePathRoot = root
}

// SetURLPathRoot overwrites the URL root.
func (s *Scan) SetURLPathRoot(root string) {
	s.URLPathRoot = root
}

// StaticFindings returns findings reported in file space.
func (s *Scan) StaticFindings() []*Finding {
	var out []*Finding
	for _, f := range s.Findings {
		if f.IsStatic() {
			out = append(out, f)
		}
	}
	return out
}

// DynamicFindings returns findings reported in URL space.
func (s *Scan) DynamicFindings() []*Finding {
	var out []*Finding
	for _, f := range s.Findings {
		if f.IsDynamic() {
			out = append(out, f)
		}
	}
	return out
}
