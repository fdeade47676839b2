package config

import "github.com/spf13/viper"

// SetDefaults registers the default value of every configuration key.
func SetDefaults() {
	// Empty shim_dir and shim_source resolve at use time, to the
	// per-user shim directory and the shim binary next to shimgen.
	viper.SetDefault("shim_dir", "")
	viper.SetDefault("shim_source", "")

	viper.SetDefault("log.level", "info")
	// auto picks console on a terminal and json otherwise.
	viper.SetDefault("log.format", "auto")
	viper.SetDefault("log.file", "")
}
