package conf

import (
	"github.com/spf13/viper"
)

// setDefaultConfig sets every config key's default value. Threshold
// defaults match the classifier package's stock policy.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("input.path", "")
	viper.SetDefault("input.recursive", false)

	viper.SetDefault("output.path", "")
	viper.SetDefault("output.reportdb", "wolfvue-reports.db")

	viper.SetDefault("taxonomy.path", "taxonomy.yaml")

	viper.SetDefault("detector.labels", []string{
		"Wolf", "Coyote", "Fox", "Elk", "Deer", "Moose", "Bear", "Cougar", "Bobcat",
	})
	viper.SetDefault("detector.framecount", 30)

	viper.SetDefault("thresholds.confidencethreshold", 0.40)
	viper.SetDefault("thresholds.dominantspeciesthreshold", 0.90)
	viper.SetDefault("thresholds.maxspeciestransitions", 5)
	viper.SetDefault("thresholds.consecutiveemptyframes", 15)
	viper.SetDefault("thresholds.imageconfidencethreshold", 0.65)
	viper.SetDefault("thresholds.imagemindetections", 1)
	viper.SetDefault("thresholds.imagemultispeciesthreshold", 0.60)
	viper.SetDefault("thresholds.imageunsortedminconfidence", 0.35)
	viper.SetDefault("thresholds.imageunsortedmaxconfidence", 0.65)

	viper.SetDefault("media.videoextensions", []string{
		".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm",
	})
	viper.SetDefault("media.imageextensions", []string{
		".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".webp",
	})
}
