// Package classify decides, for a single dependency, whether a separate
// type-declaration package has to be installed.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/typefill-labs/typefill/internal/branding"
	"github.com/typefill-labs/typefill/internal/logging"
)

// Kind is the disposition of one dependency.
type Kind int

const (
	// AlreadyHasTypes: the manifest already lists the @types package.
	AlreadyHasTypes Kind = iota
	// BundlesOwnTypes: the installed package declares its own types.
	BundlesOwnTypes
	// NeedsInstall: a matching @types package is published.
	NeedsInstall
	// NotFoundInRegistry: no types anywhere.
	NotFoundInRegistry
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case AlreadyHasTypes:
		return "already-has-types"
	case BundlesOwnTypes:
		return "bundles-own-types"
	case NeedsInstall:
		return "needs-install"
	case NotFoundInRegistry:
		return "not-found"
	default:
		return "unknown"
	}
}

// Outcome is the classification of one dependency. TypesPackage is set only
// when Kind is NeedsInstall.
type Outcome struct {
	Name         string
	Kind         Kind
	TypesPackage string
}

// TypeSet holds the @types package names already declared in the manifest.
// It is built once and only read afterwards.
type TypeSet map[string]struct{}

// NewTypeSet returns a set containing names.
func NewTypeSet(names ...string) TypeSet {
	s := make(TypeSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s TypeSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// MetadataLookup reports whether the installed copy of a dependency declares
// its own types. Any error means the metadata is absent or unreadable.
type MetadataLookup func(name string) (bool, error)

// RegistryLookup reports whether a package name is published. An error is a
// transport failure.
type RegistryLookup func(ctx context.Context, pkg string) (bool, error)

// TypesPackage returns the type-declaration package name for dep.
func TypesPackage(dep string) string {
	return branding.TypesScope() + dep
}

// IsTypesPackage reports whether name already is a type-declaration package.
func IsTypesPackage(name string) bool {
	return strings.HasPrefix(name, branding.TypesScope())
}

// Classify runs the checks for name in order: declared @types package, bundled
// types, registry. The registry is consulted only when both local checks fail.
// The only error returned is a registry transport failure.
func Classify(ctx context.Context, name string, installed TypeSet, meta MetadataLookup, reg RegistryLookup) (Outcome, error) {
	log := logging.From(ctx)
	typesPkg := TypesPackage(name)

	if installed.Has(typesPkg) {
		return Outcome{Name: name, Kind: AlreadyHasTypes}, nil
	}

	bundled, err := meta(name)
	if err != nil {
		log.Debug().Str("dep", name).Err(err).Msg("no readable local metadata")
	} else if bundled {
		return Outcome{Name: name, Kind: BundlesOwnTypes}, nil
	}

	found, err := reg(ctx, typesPkg)
	if err != nil {
		return Outcome{}, fmt.Errorf("looking up %s: %w", typesPkg, err)
	}
	if !found {
		return Outcome{Name: name, Kind: NotFoundInRegistry}, nil
	}
	return Outcome{Name: name, Kind: NeedsInstall, TypesPackage: typesPkg}, nil
}
