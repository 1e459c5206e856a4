package taxonomy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
	"github.com/wolfvue/wolfvue-go/internal/conf"
	"github.com/wolfvue/wolfvue-go/internal/logging"
	"github.com/wolfvue/wolfvue-go/internal/taxonomy"
)

// Command creates the taxonomy command, which loads the taxonomy file
// and prints every category, its species and the directory each species
// routes to.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxonomy",
		Short: "Show the loaded taxonomy and its routing targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTaxonomy(settings)
		},
	}

	return cmd
}

func showTaxonomy(settings *conf.Settings) error {
	tax, err := taxonomy.Load(settings.Taxonomy.Path, logging.StructuredLogger())
	if err != nil {
		return err
	}

	outputRoot, err := filepath.Abs(settings.Output.Path)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Species", "Destination"})
	for _, category := range tax.Categories() {
		for _, species := range category.Species {
			dest := filepath.Join(outputRoot, taxonomy.SortedDir, category.Name, species)
			t.AppendRow(table.Row{category.Name, species, dest})
		}
	}
	t.AppendFooter(table.Row{"", "Species", tax.Len()})
	t.Render()

	fmt.Printf("Unmapped species route to %s\n", filepath.Join(outputRoot, taxonomy.SortedDir, taxonomy.OtherCategory, "<species>"))
	fmt.Printf("Unsorted media route to %s\n", filepath.Join(outputRoot, classifier.UnsortedBucket))
	fmt.Printf("Empty media route to %s\n", filepath.Join(outputRoot, classifier.NoAnimalBucket))
	return nil
}
