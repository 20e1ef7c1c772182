package intent

import (
	"bytes"
	"os"
	"slices"
	"strings"

	perr "mvpauth/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

// ErrNotResolvable is returned when no installed component matches an intent
var ErrNotResolvable = perr.New(perr.ErrorCodeNotFound, "no component resolves intent")

// Manifest is the host registry file: every installed application, its
// declared components and the endpoint its process listens on
type Manifest struct {
	Apps []App `yaml:"apps"`
}

// App is one installed application
type App struct {
	Package    string          `yaml:"package"`
	Endpoint   string          `yaml:"endpoint"`
	Components []ComponentDecl `yaml:"components"`
}

// ComponentDecl declares one component of an App
type ComponentDecl struct {
	Class      string   `yaml:"class"`
	Kind       Kind     `yaml:"kind"`
	Launcher   bool     `yaml:"launcher,omitempty"`
	Actions    []string `yaml:"actions,omitempty"`
	Categories []string `yaml:"categories,omitempty"`
	Schemes    []string `yaml:"schemes,omitempty"`
}

// Resolved is a delivery target picked by the registry
type Resolved struct {
	Endpoint  string
	Component Component
	Kind      Kind
}

// ParseManifest decodes a registry document and checks its shape
func ParseManifest(b []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid host registry")
	}
	seen := map[string]struct{}{}
	for i, a := range m.Apps {
		if strings.TrimSpace(a.Package) == "" {
			return Manifest{}, perr.Newf(perr.ErrorCodeInvalidArgument, "apps[%d]: package is required", i)
		}
		if _, dup := seen[a.Package]; dup {
			return Manifest{}, perr.Newf(perr.ErrorCodeInvalidArgument, "apps[%d]: duplicate package %q", i, a.Package)
		}
		seen[a.Package] = struct{}{}
		for j, c := range a.Components {
			if strings.TrimSpace(c.Class) == "" {
				return Manifest{}, perr.Newf(perr.ErrorCodeInvalidArgument, "apps[%d].components[%d]: class is required", i, j)
			}
			if !c.Kind.Valid() {
				return Manifest{}, perr.Newf(perr.ErrorCodeInvalidArgument,
					"apps[%d].components[%d]: unknown kind %q", i, j, c.Kind)
			}
		}
	}
	return m, nil
}

// Registry answers lookups against the host registry
// Source is read on every lookup so installs and removals show up without a restart
type Registry struct {
	load func() ([]byte, error)
}

// NewFileRegistry reads the manifest at path on each lookup
func NewFileRegistry(path string) *Registry {
	return &Registry{load: func() ([]byte, error) { return os.ReadFile(path) }}
}

// NewStaticRegistry serves a fixed manifest
func NewStaticRegistry(m Manifest) *Registry {
	b, err := yaml.Marshal(m)
	return &Registry{load: func() ([]byte, error) { return b, err }}
}

func (r *Registry) manifest() (Manifest, error) {
	b, err := r.load()
	if err != nil {
		return Manifest{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "read host registry")
	}
	return ParseManifest(b)
}

// App returns the installed application for pkg
func (r *Registry) App(pkg string) (App, bool, error) {
	m, err := r.manifest()
	if err != nil {
		return App{}, false, err
	}
	for _, a := range m.Apps {
		if a.Package == pkg {
			return a, true, nil
		}
	}
	return App{}, false, nil
}

// Launchable lists launcher activities of pkg
func (r *Registry) Launchable(pkg string) ([]Component, error) {
	a, ok, err := r.App(pkg)
	if err != nil || !ok {
		return nil, err
	}
	var out []Component
	for _, c := range a.Components {
		if c.Kind == KindActivity && c.Launcher {
			out = append(out, Component{Package: a.Package, Class: c.Class})
		}
	}
	return out, nil
}

// ResolveExplicit finds the component an explicitly addressed intent names
func (r *Registry) ResolveExplicit(in Intent, kind Kind) (Resolved, error) {
	if in.Component == nil {
		return Resolved{}, perr.Wrap(ErrNotResolvable, perr.ErrorCodeInvalidArgument, "intent has no component")
	}
	a, ok, err := r.App(in.Component.Package)
	if err != nil {
		return Resolved{}, err
	}
	if !ok {
		return Resolved{}, perr.Wrapf(ErrNotResolvable, perr.ErrorCodeNotFound,
			"package %s is not installed", in.Component.Package)
	}
	for _, c := range a.Components {
		if c.Class != in.Component.Class {
			continue
		}
		if c.Kind != kind {
			return Resolved{}, perr.Wrapf(ErrNotResolvable, perr.ErrorCodeNotFound,
				"%s is a %s, not a %s", in.Component, c.Kind, kind)
		}
		if scheme := in.Scheme(); scheme != "" && len(c.Schemes) > 0 && !slices.Contains(c.Schemes, scheme) {
			return Resolved{}, perr.Wrapf(ErrNotResolvable, perr.ErrorCodeNotFound,
				"%s does not handle scheme %s", in.Component, scheme)
		}
		return Resolved{Endpoint: a.Endpoint, Component: *in.Component, Kind: kind}, nil
	}
	return Resolved{}, perr.Wrapf(ErrNotResolvable, perr.ErrorCodeNotFound, "%s is not declared", in.Component)
}

// Receivers lists receivers declaring action, narrowed to in.Package when set
func (r *Registry) Receivers(in Intent) ([]Resolved, error) {
	m, err := r.manifest()
	if err != nil {
		return nil, err
	}
	var out []Resolved
	for _, a := range m.Apps {
		if in.Package != "" && a.Package != in.Package {
			continue
		}
		for _, c := range a.Components {
			if c.Kind == KindReceiver && slices.Contains(c.Actions, in.Action) {
				out = append(out, Resolved{
					Endpoint:  a.Endpoint,
					Component: Component{Package: a.Package, Class: c.Class},
					Kind:      KindReceiver,
				})
			}
		}
	}
	return out, nil
}
