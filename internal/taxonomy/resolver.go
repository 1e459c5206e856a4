package taxonomy

import (
	"os"
	"path/filepath"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
	"github.com/wolfvue/wolfvue-go/internal/errors"
)

// Fixed names in the output tree.
const (
	SortedDir     = "Sorted"
	OtherCategory = "Other"
)

// RoutingDecision names the destination for one classified file. Derived
// from a label and the taxonomy, not persisted independently.
type RoutingDecision struct {
	// Category and Species are set only for species labels.
	Category string
	Species  string
	// Path is the destination directory under the output root.
	Path string
}

// Resolver maps classification labels to destination directories under a
// fixed output root:
//
//	<root>/Sorted/<Category>/<Species>/   mapped species
//	<root>/Sorted/Other/<Species>/        unmapped species
//	<root>/Unsorted/                      manual review
//	<root>/No_Animal/                     no detections
//
// Species lookups are memoized; the taxonomy is read-only so entries never
// go stale within a run.
type Resolver struct {
	taxonomy   *Taxonomy
	outputRoot string
	lookups    *gocache.Cache
}

// NewResolver returns a resolver over the given taxonomy rooted at
// outputRoot.
func NewResolver(t *Taxonomy, outputRoot string) *Resolver {
	return &Resolver{
		taxonomy:   t,
		outputRoot: outputRoot,
		lookups:    gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve maps a label to its routing decision. For a species missing from
// the taxonomy the decision falls back to the "Other" category, and the
// Other/<species> directory is created idempotently before returning; that
// directory creation is the resolver's only side effect.
func (r *Resolver) Resolve(label classifier.Label) (RoutingDecision, error) {
	switch label.Kind {
	case classifier.LabelNoAnimal:
		return RoutingDecision{Path: filepath.Join(r.outputRoot, classifier.NoAnimalBucket)}, nil
	case classifier.LabelUnsorted:
		return RoutingDecision{Path: filepath.Join(r.outputRoot, classifier.UnsortedBucket)}, nil
	}

	if cached, found := r.lookups.Get(label.Species); found {
		return cached.(RoutingDecision), nil
	}

	decision := RoutingDecision{Species: label.Species}
	category, mapped := r.taxonomy.CategoryFor(label.Species)
	if mapped {
		decision.Category = category
		decision.Path = filepath.Join(r.outputRoot, SortedDir, category, label.Species)
	} else {
		decision.Category = OtherCategory
		decision.Path = filepath.Join(r.outputRoot, SortedDir, OtherCategory, label.Species)
		// MkdirAll is a no-op when the directory already exists, so
		// repeated resolution of the same unmapped species is safe.
		if err := os.MkdirAll(decision.Path, 0o755); err != nil {
			return RoutingDecision{}, errors.New(err).
				Component("taxonomy.resolver").
				Category(errors.CategoryFileIO).
				Context("species", label.Species).
				Context("path", decision.Path).
				Build()
		}
	}

	r.lookups.Set(label.Species, decision, gocache.NoExpiration)
	return decision, nil
}
