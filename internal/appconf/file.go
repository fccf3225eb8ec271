package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File mirrors the optional YAML configuration file. Zero values mean "not set".
type File struct {
	Port       int               `yaml:"port"`
	Env        string            `yaml:"env"`
	APIKeys    []string          `yaml:"api_keys"`
	RateLimit  int               `yaml:"rate_limit"`
	Dataset    DatasetSection    `yaml:"dataset"`
	Summarizer SummarizerSection `yaml:"summarizer"`
}

type DatasetSection struct {
	URL         string `yaml:"url"`
	ScorePolicy string `yaml:"score_policy"`
	Timeout     string `yaml:"timeout"`
}

type SummarizerSection struct {
	Model       string   `yaml:"model"`
	Temperature *float32 `yaml:"temperature"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	file := &File{}
	if err := yaml.Unmarshal(b, file); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return file, nil
}

// LoadDotEnv loads environment variables from the given .env files. Files
// that do not exist are skipped; variables already set are not overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("error loading %s: %w", path, err)
		}
	}
	return nil
}
