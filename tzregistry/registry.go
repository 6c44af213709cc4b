// Package tzregistry resolves zone identifiers to tzone.TimeZone values.
// It is the collaborator boundary the conversion engine depends on: the
// engine consumes fully validated zones and never touches storage, while a
// Registry decides where zone definitions come from.
//
// A Registry is an explicit context object, not ambient global state.
// Invalidation returns a fresh Registry so concurrent readers of the old
// one never observe tearing.
package tzregistry

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/maypok86/otter/v2"

	"github.com/ngrash/go-tzone/tzif"
	"github.com/ngrash/go-tzone/tzone"
	"github.com/ngrash/go-tzone/tzstr"
)

// ErrZoneNotFound is returned by Lookup when no provider knows the id.
var ErrZoneNotFound = errors.New("tzregistry: zone not found")

// Provider supplies zone definitions by id.
type Provider interface {
	Lookup(id string) (*tzone.TimeZone, error)
}

// MapProvider serves a fixed set of prebuilt zones.
type MapProvider map[string]*tzone.TimeZone

func (m MapProvider) Lookup(id string) (*tzone.TimeZone, error) {
	z, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	return z, nil
}

// TZStringProvider serves zones defined as POSIX-style TZ strings keyed by
// id. Strings are parsed and validated on first lookup.
type TZStringProvider map[string]string

func (m TZStringProvider) Lookup(id string) (*tzone.TimeZone, error) {
	s, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	z, err := tzstr.ParseNamed(id, s)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}
	return z, nil
}

// TZifProvider serves zones from a tree of TZif files, such as an
// unpacked zoneinfo directory, where the file path is the zone id. The
// zone is built from the file's footer TZ string; files without one
// cannot be served.
type TZifProvider struct {
	FS fs.FS
}

func (p TZifProvider) Lookup(id string) (*tzone.TimeZone, error) {
	if !fs.ValidPath(id) {
		return nil, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	b, err := fs.ReadFile(p.FS, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	f, err := tzif.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}
	if f.TZString == "" {
		return nil, fmt.Errorf("zone %q: tzif file carries no tz string", id)
	}
	z, err := tzstr.ParseNamed(id, f.TZString)
	if err != nil {
		return nil, fmt.Errorf("zone %q: %w", id, err)
	}
	return z, nil
}

// Registry resolves ids through an ordered provider chain behind a
// read-through cache. The built-in "UTC" id always resolves. Safe for
// concurrent use.
type Registry struct {
	providers []Provider
	cache     *otter.Cache[string, *tzone.TimeZone]
	logger    *slog.Logger

	mu    sync.RWMutex
	local *tzone.TimeZone
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for lookup diagnostics. Without it the
// registry is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

const cacheCapacity = 1024

// New builds a Registry over the given provider chain. Providers are
// consulted in order; the first hit wins and is cached.
func New(providers []Provider, opts ...Option) *Registry {
	r := &Registry{
		providers: providers,
		cache: otter.Must(&otter.Options[string, *tzone.TimeZone]{
			MaximumSize: cacheCapacity,
		}),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup resolves a zone id. It returns an error wrapping ErrZoneNotFound
// when no provider knows the id.
func (r *Registry) Lookup(id string) (*tzone.TimeZone, error) {
	if id == tzone.UTC.ID() {
		return tzone.UTC, nil
	}
	if z, ok := r.cache.GetIfPresent(id); ok {
		r.logger.Debug("zone cache hit", "id", id)
		return z, nil
	}

	for _, p := range r.providers {
		z, err := p.Lookup(id)
		if errors.Is(err, ErrZoneNotFound) {
			continue
		}
		if err != nil {
			r.logger.Warn("zone lookup failed", "id", id, "error", err)
			return nil, err
		}
		r.cache.Set(id, z)
		r.logger.Debug("zone resolved", "id", id, "offset", z.BaseUTCOffset())
		return z, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
}

// SetLocal designates the zone the given id resolves to as the local zone:
// Local returns a copy of it to which LocalKind instants are native.
func (r *Registry) SetLocal(id string) error {
	z, err := r.Lookup(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.local = z.AsLocal()
	r.mu.Unlock()
	return nil
}

// Local returns the designated local zone, or nil when none is set.
func (r *Registry) Local() *tzone.TimeZone {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.local
}

// Invalidate returns a fresh Registry with the same provider chain and an
// empty cache. The receiver is left untouched so in-flight readers keep a
// consistent view.
func (r *Registry) Invalidate() *Registry {
	fresh := New(r.providers, WithLogger(r.logger))
	r.mu.RLock()
	fresh.local = r.local
	r.mu.RUnlock()
	return fresh
}
