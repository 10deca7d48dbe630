// Package config loads the ambient settings of the file server from a YAML
// file, a .env file and environment variables. The listening address, base
// directory and excluded extensions are compiled in and not part of it.
package config
