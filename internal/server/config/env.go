package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays values from AUTHGATE_* environment variables onto the
// provided Config. The signing secret normally arrives this way. Unset
// variables leave the existing values untouched; an unparsable value
// panics, consistent with the JSON overlay.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
