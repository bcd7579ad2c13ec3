package resolve

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/typefill-labs/typefill/internal/classify"
	"github.com/typefill-labs/typefill/internal/logging"
	"github.com/typefill-labs/typefill/internal/manifest"
)

// Installer installs a batch of packages in one invocation.
type Installer interface {
	Install(ctx context.Context, pkgs []string) error
}

// Result is the outcome of one run.
type Result struct {
	// Outcomes holds one entry per candidate, in manifest order.
	Outcomes []classify.Outcome
	// Batch holds the type packages to install, in manifest order.
	Batch []string
	// Installed is true once the installer has succeeded.
	Installed bool
}

// Count returns how many outcomes have kind k.
func (r *Result) Count(k classify.Kind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// Resolver classifies dependencies and installs the missing type packages.
type Resolver struct {
	Metadata  classify.MetadataLookup
	Registry  classify.RegistryLookup
	Installer Installer
	// Out receives status lines; nil discards them.
	Out io.Writer
	// Concurrency bounds parallel registry lookups. Values below 1 mean 1.
	Concurrency int
	// DryRun reports the batch without installing it.
	DryRun bool
}

func (r *Resolver) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Resolver) limit() int {
	if r.Concurrency < 1 {
		return 1
	}
	return r.Concurrency
}

// Partition splits the manifest's dependencies, production first, into the
// set of declared type packages and the remaining candidates. Candidates keep
// declaration order; a name declared twice is kept once.
func Partition(pkg *manifest.Package) (classify.TypeSet, []string) {
	installed := classify.NewTypeSet()
	var candidates []string
	seen := make(map[string]bool)

	for _, dep := range pkg.AllDependencies() {
		if classify.IsTypesPackage(dep.Name) {
			installed[dep.Name] = struct{}{}
			continue
		}
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true
		candidates = append(candidates, dep.Name)
	}
	return installed, candidates
}

// Run classifies every candidate and builds the install batch. It stops at
// the first registry transport failure.
func (r *Resolver) Run(ctx context.Context, pkg *manifest.Package) (*Result, error) {
	installed, candidates := Partition(pkg)
	logging.From(ctx).Debug().
		Int("candidates", len(candidates)).
		Int("declared_types", len(installed)).
		Int("concurrency", r.limit()).
		Msg("classifying dependencies")

	outcomes := make([]classify.Outcome, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())

	for i, name := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o, err := classify.Classify(gctx, name, installed, r.Metadata, r.Registry)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolving type packages: %w", err)
	}

	res := &Result{Outcomes: outcomes}
	for _, o := range outcomes {
		PrintOutcome(r.out(), o)
		if o.Kind == classify.NeedsInstall {
			res.Batch = append(res.Batch, o.TypesPackage)
		}
	}
	return res, nil
}

// Sync runs the classification and installs a non-empty batch exactly once.
func (r *Resolver) Sync(ctx context.Context, pkg *manifest.Package) (*Result, error) {
	res, err := r.Run(ctx, pkg)
	if err != nil {
		return nil, err
	}

	w := r.out()
	if len(res.Batch) == 0 {
		PrintNothingToInstall(w)
		return res, nil
	}
	if r.DryRun {
		PrintDryRun(w, res.Batch)
		return res, nil
	}

	PrintInstalling(w, res.Batch)
	if err := r.Installer.Install(ctx, res.Batch); err != nil {
		return res, fmt.Errorf("installing type packages: %w", err)
	}
	res.Installed = true
	PrintSummary(w, res)
	return res, nil
}
