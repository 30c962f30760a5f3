package main

import "github.com/spf13/viper"

// serviceConfig covers runtime concerns that are not part of a battle
// definition: where platings live and how loud the logger is.
type serviceConfig struct {
	LogLevel   string
	PlatingDir string
}

// loadService reads battlesim.yaml from the config dir when present,
// falling back to defaults otherwise. Battle and roster definitions stay
// in their own files; this is operator configuration only.
func loadService(cfgDir string) serviceConfig {
	v := viper.New()
	v.SetDefault("logLevel", "info")
	v.SetDefault("platingDir", "assets/platings")

	v.SetConfigName("battlesim")
	v.SetConfigType("yaml")
	v.AddConfigPath(cfgDir)
	// Missing file is fine, defaults apply.
	_ = v.ReadInConfig()

	return serviceConfig{
		LogLevel:   v.GetString("logLevel"),
		PlatingDir: v.GetString("platingDir"),
	}
}
