// Package config loads strobe-cli's optional defaults file: the security
// parameter, domain separator, and tag length a site wants new invocations
// to assume when the corresponding flag is left unset.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds strobe-cli's persisted defaults.
type Config struct {
	Param     string `toml:"param"`
	Domain    string `toml:"domain"`
	TagLength int    `toml:"tag_length"`
}

// Load decodes a TOML defaults file. A missing file is not an error -- it
// just means no overrides apply, the same as an empty Config.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return c, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return c, nil
}
