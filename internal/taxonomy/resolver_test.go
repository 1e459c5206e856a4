package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
)

func testTaxonomy() *Taxonomy {
	return New([]Category{
		{Name: "Canids", Species: []string{"Wolf", "Coyote"}},
		{Name: "Cervids", Species: []string{"Elk", "Deer"}},
	})
}

func TestResolveFixedBuckets(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(testTaxonomy(), root)

	unsorted, err := resolver.Resolve(classifier.UnsortedLabel())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Unsorted"), unsorted.Path)
	assert.Empty(t, unsorted.Category)
	assert.Empty(t, unsorted.Species)

	noAnimal, err := resolver.Resolve(classifier.NoAnimalLabel())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "No_Animal"), noAnimal.Path)
}

func TestResolveMappedSpecies(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(testTaxonomy(), root)

	decision, err := resolver.Resolve(classifier.SpeciesLabel("Elk"))
	require.NoError(t, err)
	assert.Equal(t, "Cervids", decision.Category)
	assert.Equal(t, "Elk", decision.Species)
	assert.Equal(t, filepath.Join(root, "Sorted", "Cervids", "Elk"), decision.Path)

	// mapped species resolution has no side effect
	_, err = os.Stat(decision.Path)
	assert.True(t, os.IsNotExist(err), "mapped species must not create directories")
}

func TestResolveUnmappedSpeciesCreatesOther(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(testTaxonomy(), root)

	decision, err := resolver.Resolve(classifier.SpeciesLabel("Wolverine"))
	require.NoError(t, err)
	assert.Equal(t, "Other", decision.Category)
	assert.Equal(t, filepath.Join(root, "Sorted", "Other", "Wolverine"), decision.Path)

	info, err := os.Stat(decision.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// resolving the same species again is idempotent
	again, err := resolver.Resolve(classifier.SpeciesLabel("Wolverine"))
	require.NoError(t, err)
	assert.Equal(t, decision, again)
}

func TestResolveMemoization(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(testTaxonomy(), root)

	first, err := resolver.Resolve(classifier.SpeciesLabel("Wolf"))
	require.NoError(t, err)
	second, err := resolver.Resolve(classifier.SpeciesLabel("Wolf"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
