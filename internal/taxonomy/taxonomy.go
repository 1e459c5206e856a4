// Package taxonomy maps decided species labels to the category-structured
// output tree. The taxonomy is built once by the loader and read-only for
// the duration of a run.
package taxonomy

// Category is one named group of species, e.g. "Canids" -> Wolf, Coyote.
type Category struct {
	Name    string
	Species []string
}

// Taxonomy is the ordered category -> species grouping used to choose an
// output subdirectory. Category order is the file order of the source
// config; species lookup walks categories in that order and the first
// category containing the species wins.
type Taxonomy struct {
	categories []Category
	// byName indexes species -> category under first-seen-wins.
	byName map[string]string
}

// New builds a taxonomy from ordered categories. A species listed in more
// than one category resolves to the first category that listed it; the
// loader warns about such duplicates.
func New(categories []Category) *Taxonomy {
	t := &Taxonomy{
		categories: categories,
		byName:     make(map[string]string),
	}
	for _, c := range categories {
		for _, s := range c.Species {
			if _, exists := t.byName[s]; !exists {
				t.byName[s] = c.Name
			}
		}
	}
	return t
}

// Categories returns the categories in source order.
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// CategoryFor returns the category owning the given species and whether
// the species is mapped at all.
func (t *Taxonomy) CategoryFor(species string) (string, bool) {
	category, ok := t.byName[species]
	return category, ok
}

// Species returns every mapped species name, category order first, list
// order within a category second. Duplicates are not repeated.
func (t *Taxonomy) Species() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, c := range t.categories {
		for _, s := range c.Species {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int {
	return len(t.categories)
}

// Empty reports whether the taxonomy has no categories. An empty taxonomy
// aborts a run before any file is processed.
func (t *Taxonomy) Empty() bool {
	return len(t.categories) == 0
}
