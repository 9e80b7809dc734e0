// Package config loads settings for the Yukta CLI.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, a JSON file named with -c or -config, then flags.
package config
