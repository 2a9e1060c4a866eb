package scenario

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/slideplay/slideplay/filesystem"
	"github.com/slideplay/slideplay/log"
)

// Load reads and validates a scenario from a TOML file. A relative script
// path is resolved against the scenario file's directory.
func Load(path string) (*Scenario, error) {
	log.Debugf("loading scenario from %s", path)

	v := viper.New()
	v.SetFs(filesystem.API())
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}

	if s.Script != "" && !filepath.IsAbs(s.Script) {
		s.Script = filepath.Join(filepath.Dir(path), s.Script)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
