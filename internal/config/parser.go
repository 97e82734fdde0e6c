package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads a configuration file from disk on top of Default, validates it, and returns the result.
func ParseConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, calerrors.NewParseError(path, 0, err)
	}

	return Parse(path, data)
}

// Parse decodes configuration bytes. The path is only used in error messages.
func Parse(path string, data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, calerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load returns Default when path is empty and ParseConfig otherwise.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, ValidateConfig(cfg)
	}
	return ParseConfig(path)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
