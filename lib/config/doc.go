// Package config holds the settings of the tmpe-config tool itself.
//
// Settings come from three places, later ones winning: the built-in defaults,
// the YAML settings file ($HOME/.tmpe/config.yaml unless --config names
// another one) and TMPE_-prefixed environment variables. A nested key maps to
// an environment variable by upper-casing it and replacing dots with
// underscores, so diagnostics.polling_enabled becomes
// TMPE_DIAGNOSTICS_POLLING_ENABLED.
//
// These settings describe where the global config lives and how it is
// handled. The global config payload itself is managed by package lifecycle.
package config
