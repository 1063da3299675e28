// Package config loads TOML and YAML configuration with environment overrides
// and live reloading.
//
// Keys are addressed in dotted form ("engine.scale"). With EnvPrefix "NUMERIK"
// the environment variable NUMERIK_ENGINE_SCALE overrides that key. Watch
// reloads the file on change and calls every OnChange handler with the old and
// the new state.
//
//	cfg, err := config.LoadWithOptions("numerik.toml", config.LoadOptions{EnvPrefix: "NUMERIK"})
//	scale := cfg.GetInt("engine.scale", 2)
package config
