package findings

// Finding is a minimal internal domain model extracted from SARIF or other scanners.
// Static scanners fill the file coordinates, dynamic scanners the URL ones.
type Finding struct {
	NativeID    string `json:"native_id,omitempty"`
	RuleID      string `json:"rule_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Scanner     string `json:"scanner"`

	FilePath  string `json:"file_path,omitempty"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	Column    int    `json:"column,omitempty"`
	LineText  string `json:"line_text,omitempty"`

	URLPath   string `json:"url_path,omitempty"`
	FullURL   string `json:"full_url,omitempty"`
	Parameter string `json:"parameter,omitempty"`

	// Canonical coordinates, filled by a translator.
	CalculatedFilePath string `json:"calculated_file_path,omitempty"`
	CalculatedURLPath  string `json:"calculated_url_path,omitempty"`
}

// IsDynamic reports whether the finding was reported in URL space.
func (f *Finding) IsDynamic() bool {
	return f.URLPath != "" || f.FullURL != ""
}

// IsStatic reports whether the finding was reported in file space only.
func (f *Finding) IsStatic() bool {
	return !f.IsDynamic() && f.FilePath != ""
}
