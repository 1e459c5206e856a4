package taxonomy

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleYAML = `
categories:
  Canids:
    - Wolf
    - Coyote
  Cervids:
    - Elk
    - Deer
    - Moose
  Felids:
    - Cougar
    - Bobcat
`

func TestParsePreservesCategoryOrder(t *testing.T) {
	t.Parallel()

	tax, err := Parse(strings.NewReader(sampleYAML), discardLogger())
	require.NoError(t, err)

	categories := tax.Categories()
	require.Len(t, categories, 3)
	assert.Equal(t, "Canids", categories[0].Name)
	assert.Equal(t, "Cervids", categories[1].Name)
	assert.Equal(t, "Felids", categories[2].Name)

	category, ok := tax.CategoryFor("Moose")
	require.True(t, ok)
	assert.Equal(t, "Cervids", category)

	_, ok = tax.CategoryFor("Penguin")
	assert.False(t, ok)
}

func TestParseDuplicateSpeciesFirstSeenWins(t *testing.T) {
	t.Parallel()

	const dup = `
categories:
  Canids:
    - Wolf
  Felids:
    - Wolf
    - Cougar
`
	tax, err := Parse(strings.NewReader(dup), discardLogger())
	require.NoError(t, err)

	category, ok := tax.CategoryFor("Wolf")
	require.True(t, ok)
	assert.Equal(t, "Canids", category)

	// species list does not repeat the duplicate
	assert.Equal(t, []string{"Wolf", "Cougar"}, tax.Species())
}

func TestParseRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"no categories key", `species: [Wolf]`},
		{"categories not a mapping", `categories: [Wolf, Elk]`},
		{"species not a list", "categories:\n  Canids: Wolf"},
		{"broken yaml", `categories: {`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(strings.NewReader(tt.yaml), discardLogger())
			assert.Error(t, err)
		})
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, New(nil).Empty())
	assert.False(t, New([]Category{{Name: "Canids", Species: []string{"Wolf"}}}).Empty())
}
