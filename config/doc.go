// Package config loads service configuration with Viper.
//
// Values come from a YAML file, an optional .env file and environment
// variables carrying the service prefix, in increasing precedence.
// Nested keys map to underscores, so PRONOUNCE_SCORING_POLICY sets
// scoring.policy and PRONOUNCE_MODEL_PATH sets model.path.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("pronounce", &cfg, config.WithConfigFile(path))
package config
