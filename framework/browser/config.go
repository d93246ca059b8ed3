package browser

import "strings"

// Kind is a supported browser.
type Kind string

const (
	Chrome Kind = "chrome"
	Edge   Kind = "edge"
)

// Kinds returns every supported browser kind.
func Kinds() []Kind { return []Kind{Chrome, Edge} }

// ParseKind accepts a kind name case-insensitively. There is no default: an empty or unknown
// name is a *ConfigError.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case Chrome:
		return Chrome, nil
	case Edge:
		return Edge, nil
	case "":
		return "", &ConfigError{Field: "browser", Value: name, Reason: "no browser kind configured"}
	default:
		return "", &ConfigError{Field: "browser", Value: name, Reason: "unsupported browser kind (expected chrome or edge)"}
	}
}

// Config is the declarative description of a session.
type Config struct {
	Kind                   string
	Headless               bool
	DownloadDir            string
	DisableNotifications   bool
	DisablePasswordManager bool

	// ProfileDir is the user data directory. If empty, every session gets a fresh temporary
	// profile that is removed when the session closes.
	ProfileDir string
}
