package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wolfvue/wolfvue-go/cmd/directory"
	"github.com/wolfvue/wolfvue-go/cmd/file"
	"github.com/wolfvue/wolfvue-go/cmd/taxonomy"
	"github.com/wolfvue/wolfvue-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wolfvue",
		Short: "WolfVue camera trap sorter CLI",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		file.Command(settings),
		directory.Command(settings),
		taxonomy.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Re-unmarshal so command-line flags take precedence over the
		// config file and defaults.
		return viper.Unmarshal(settings)
	}

	return rootCmd
}

// setupFlags configures the global flags shared by every subcommand and
// binds them into viper.
func setupFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().Bool("debug", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringP("output", "o", viper.GetString("output.path"), "Output root for the sorted tree")
	rootCmd.PersistentFlags().StringP("taxonomy", "t", viper.GetString("taxonomy.path"), "Path to the taxonomy yaml file")
	rootCmd.PersistentFlags().String("reportdb", viper.GetString("output.reportdb"), "Path to the sqlite report database, empty disables persistence")
	rootCmd.PersistentFlags().Float64("confidence", viper.GetFloat64("thresholds.confidencethreshold"), "Minimum per-detection confidence for video frames")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("output.path", rootCmd.PersistentFlags().Lookup("output")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("taxonomy.path", rootCmd.PersistentFlags().Lookup("taxonomy")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("output.reportdb", rootCmd.PersistentFlags().Lookup("reportdb")); err != nil {
		cobra.CheckErr(err)
	}
	if err := viper.BindPFlag("thresholds.confidencethreshold", rootCmd.PersistentFlags().Lookup("confidence")); err != nil {
		cobra.CheckErr(err)
	}
}
