package directory

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wolfvue/wolfvue-go/internal/batch"
	"github.com/wolfvue/wolfvue-go/internal/conf"
)

// Command creates the directory command for sorting every media file
// under a directory.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "directory [path]",
		Short: "Classify and sort all media files in a directory",
		Long:  "Provide a directory path to classify every recognized video and image within it and move each into the sorted output tree.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			return batch.SortDirectory(cmd.Context(), settings)
		},
	}

	setupFlags(cmd)

	return cmd
}

// setupFlags defines flags specific to the directory command.
func setupFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("recursive", "r", viper.GetBool("input.recursive"), "Recursively scan subdirectories")

	if err := viper.BindPFlag("input.recursive", cmd.Flags().Lookup("recursive")); err != nil {
		cobra.CheckErr(err)
	}
}
