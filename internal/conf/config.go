// Package conf defines the application settings, loads them through viper
// and validates them before a run starts.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/wolfvue/wolfvue-go/internal/classifier"
)

// InputSettings names the media to classify.
type InputSettings struct {
	Path      string `mapstructure:"path"`      // file or directory to process
	Recursive bool   `mapstructure:"recursive"` // descend into subdirectories
}

// OutputSettings names where sorted files and the run report go.
type OutputSettings struct {
	Path     string `mapstructure:"path"`     // output root for the sorted tree
	ReportDB string `mapstructure:"reportdb"` // sqlite report database path, empty disables persistence
}

// TaxonomySettings points at the category config.
type TaxonomySettings struct {
	Path string `mapstructure:"path"` // taxonomy yaml file
}

// DetectorSettings configures the detector backend. Only the simulated
// backend ships with this repository; a real backend reads the same
// class label list.
type DetectorSettings struct {
	Labels     []string `mapstructure:"labels"`     // class list, indexed by species id
	FrameCount int      `mapstructure:"framecount"` // frames sampled per video
}

// ThresholdSettings carries the classification thresholds in config form.
type ThresholdSettings struct {
	ConfidenceThreshold        float64 `mapstructure:"confidencethreshold"`
	DominantSpeciesThreshold   float64 `mapstructure:"dominantspeciesthreshold"`
	MaxSpeciesTransitions      int     `mapstructure:"maxspeciestransitions"`
	ConsecutiveEmptyFrames     int     `mapstructure:"consecutiveemptyframes"`
	ImageConfidenceThreshold   float64 `mapstructure:"imageconfidencethreshold"`
	ImageMinDetections         int     `mapstructure:"imagemindetections"`
	ImageMultiSpeciesThreshold float64 `mapstructure:"imagemultispeciesthreshold"`
	ImageUnsortedMinConfidence float64 `mapstructure:"imageunsortedminconfidence"`
	ImageUnsortedMaxConfidence float64 `mapstructure:"imageunsortedmaxconfidence"`
}

// Policy converts the settings into the classifier's immutable policy.
func (t ThresholdSettings) Policy() classifier.Policy {
	return classifier.Policy{
		ConfidenceThreshold:        t.ConfidenceThreshold,
		DominantSpeciesThreshold:   t.DominantSpeciesThreshold,
		MaxSpeciesTransitions:      t.MaxSpeciesTransitions,
		ConsecutiveEmptyFrames:     t.ConsecutiveEmptyFrames,
		ImageConfidenceThreshold:   t.ImageConfidenceThreshold,
		ImageMinDetections:         t.ImageMinDetections,
		ImageMultiSpeciesThreshold: t.ImageMultiSpeciesThreshold,
		ImageUnsortedMinConfidence: t.ImageUnsortedMinConfidence,
		ImageUnsortedMaxConfidence: t.ImageUnsortedMaxConfidence,
	}
}

// MediaSettings lists the recognized file extensions.
type MediaSettings struct {
	VideoExtensions []string `mapstructure:"videoextensions"`
	ImageExtensions []string `mapstructure:"imageextensions"`
}

// Settings is the root configuration struct, unmarshalled once at startup.
type Settings struct {
	Debug      bool              `mapstructure:"debug"`
	Input      InputSettings     `mapstructure:"input"`
	Output     OutputSettings    `mapstructure:"output"`
	Taxonomy   TaxonomySettings  `mapstructure:"taxonomy"`
	Detector   DetectorSettings  `mapstructure:"detector"`
	Thresholds ThresholdSettings `mapstructure:"thresholds"`
	Media      MediaSettings     `mapstructure:"media"`
}

// Load initializes viper, reads the optional config file and unmarshals
// the settings. A missing config file is not an error; defaults apply.
func Load() (*Settings, error) {
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}
	return settings, nil
}

// initViper sets defaults and reads the configuration file if present.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return err
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigFileNotFound(err, &notFound) {
			return fmt.Errorf("fatal error reading config file: %w", err)
		}
	}
	return nil
}

func asConfigFileNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	nf, ok := err.(viper.ConfigFileNotFoundError)
	if ok {
		*target = nf
	}
	return ok
}

// GetDefaultConfigPaths returns the directories searched for config.yaml:
// the working directory first, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}
	home, err := os.UserHomeDir()
	if err != nil {
		// no home directory is fine in containers
		return paths, nil
	}
	return append(paths, filepath.Join(home, ".config", "wolfvue")), nil
}
