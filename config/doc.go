// Package config loads prodquery configuration from a YAML file, an optional
// .env file and PRODQUERY_* environment variables, in that order of
// precedence (later wins).
//
//	var cfg config.Config
//	err := config.Load("prodquery", &cfg, config.WithConfigFile("./config.yml"))
//
// Environment keys map onto nested settings by underscores, so
// PRODQUERY_SEED_FILE sets seed.file and PRODQUERY_LOGGING_LEVEL sets
// logging.level.
package config
