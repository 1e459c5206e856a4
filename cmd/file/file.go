package file

import (
	"github.com/spf13/cobra"

	"github.com/wolfvue/wolfvue-go/internal/batch"
	"github.com/wolfvue/wolfvue-go/internal/conf"
)

// Command creates the file command for classifying and sorting a single
// media file.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [input]",
		Short: "Classify and sort a single media file",
		Long:  `Classify a single video or image and move it into the sorted output tree.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			return batch.SortFile(cmd.Context(), settings)
		},
	}

	return cmd
}
