// Package intent models addressed inter-process signals between installed
// applications and delivers them through the host registry
package intent

import (
	"slices"
	"strings"
)

// Well known actions, categories and flags
const (
	ActionMain = "intent.action.MAIN"
	ActionView = "intent.action.VIEW"

	CategoryLauncher  = "intent.category.LAUNCHER"
	CategoryBrowsable = "intent.category.BROWSABLE"
	CategoryDefault   = "intent.category.DEFAULT"

	FlagNewTask = "NEW_TASK"
)

// Kind is the type of component an intent is delivered to
type Kind string

const (
	// KindActivity is a foreground entry point
	KindActivity Kind = "activity"
	// KindService is a background processing endpoint
	KindService Kind = "service"
	// KindReceiver is a broadcast receiver
	KindReceiver Kind = "receiver"
)

// Valid reports whether k is a known component kind
func (k Kind) Valid() bool {
	switch k {
	case KindActivity, KindService, KindReceiver:
		return true
	}
	return false
}

// Route is the path segment deliveries of this kind are posted to
func (k Kind) Route() string {
	if k == KindReceiver {
		return "broadcast"
	}
	return string(k)
}

// Component addresses one component of one installed application
type Component struct {
	Package string `json:"package" yaml:"package"`
	Class   string `json:"class"   yaml:"class"`
}

// String renders pkg/class
func (c Component) String() string { return c.Package + "/" + c.Class }

// Intent is the addressed message handed to the host for delivery
// Package narrows a broadcast to receivers of one application
type Intent struct {
	Action     string            `json:"action,omitempty"`
	Component  *Component        `json:"component,omitempty"`
	Package    string            `json:"package,omitempty"`
	Data       string            `json:"data,omitempty"`
	Categories []string          `json:"categories,omitempty"`
	Flags      []string          `json:"flags,omitempty"`
	Extras     map[string]string `json:"extras,omitempty"`
	Foreground bool              `json:"foreground,omitempty"`
}

// New returns an intent with the given action
func New(action string) Intent { return Intent{Action: action} }

// WithComponent sets an explicit target
func (in Intent) WithComponent(pkg, class string) Intent {
	in.Component = &Component{Package: pkg, Class: class}
	return in
}

// WithCategory appends a category once
func (in Intent) WithCategory(c string) Intent {
	if !slices.Contains(in.Categories, c) {
		in.Categories = append(slices.Clone(in.Categories), c)
	}
	return in
}

// WithFlag appends a flag once
func (in Intent) WithFlag(f string) Intent {
	if !slices.Contains(in.Flags, f) {
		in.Flags = append(slices.Clone(in.Flags), f)
	}
	return in
}

// PutExtra sets one string extra, copying the map so intents stay values
func (in Intent) PutExtra(key, value string) Intent {
	out := make(map[string]string, len(in.Extras)+1)
	for k, v := range in.Extras {
		out[k] = v
	}
	out[key] = value
	in.Extras = out
	return in
}

// Extra returns the extra for key and whether it was present
func (in Intent) Extra(key string) (string, bool) {
	if in.Extras == nil {
		return "", false
	}
	v, ok := in.Extras[key]
	return v, ok
}

// Scheme returns the lower cased scheme of Data, empty when Data has none
func (in Intent) Scheme() string {
	i := strings.Index(in.Data, ":")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(in.Data[:i])
}

// Target describes the intent destination for logs
func (in Intent) Target() string {
	if in.Component != nil {
		return in.Component.String()
	}
	if in.Package != "" {
		return in.Package + " " + in.Action
	}
	return in.Action
}
