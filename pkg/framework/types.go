package framework

import (
	"fmt"
	"strings"
)

// Type identifies the web framework an application is built with.
type Type string

const (
	TypeNone     Type = "none"
	TypeJSP      Type = "jsp"
	TypeWebForms Type = "dotnet_webforms"
)

// ParseType converts a config or flag value into a Type. An empty value maps
// to TypeNone.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "default":
		return TypeNone, nil
	case "jsp":
		return TypeJSP, nil
	case "dotnet_webforms", "webforms", "aspx":
		return TypeWebForms, nil
	default:
		return TypeNone, fmt.Errorf("unknown framework type %q", s)
	}
}

// SourceCodeAccessLevel tells translators how much of the application source
// is available to them.
type SourceCodeAccessLevel int

const (
	AccessNone SourceCodeAccessLevel = iota
	AccessPartial
	AccessFull
)

func (l SourceCodeAccessLevel) String() string {
	switch l {
	case AccessFull:
		return "full"
	case AccessPartial:
		return "partial"
	default:
		return "none"
	}
}

// ParseSourceCodeAccessLevel converts a config or flag value into a level.
// An empty value maps to AccessNone.
func ParseSourceCodeAccessLevel(s string) (SourceCodeAccessLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AccessNone, nil
	case "partial", "limited":
		return AccessPartial, nil
	case "full":
		return AccessFull, nil
	default:
		return AccessNone, fmt.Errorf("unknown source code access level %q", s)
	}
}

// MergeConfiguration carries the settings translators dispatch on.
type MergeConfiguration struct {
	FrameworkType         Type
	SourceCodeAccessLevel SourceCodeAccessLevel
}
