package framework

import (
	"github.com/scan-io-git/endpointmap/internal/findings"
)

// Translator converts the raw coordinates of a finding into canonical file
// and URL paths. Implementations are immutable after construction.
type Translator interface {
	FileName(f *findings.Finding) string
	URLPath(f *findings.Finding) string
}
