package config

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

var (
	// Default is the configuration used as the base, merged with
	// ~/.stopover.yaml when present.
	Default = Config{
		Directory: "~/.stopover.d",
		Model:     "gemini-2.0-flash",
		Language:  "English",
		Currency:  "$",
	}
)

type Config struct {
	// Directory is where the itinerary file lives.
	Directory string `yaml:"directory" validate:"required"`
	// Model is the generative model used for travel tips.
	Model string `yaml:"model" validate:"required"`
	// Language is the language tips are requested in.
	Language string `yaml:"language" validate:"required"`
	// Currency is the symbol shown next to cost estimates.
	Currency string `yaml:"currency" validate:"required"`
}

func NewFromReader(r io.Reader) (*Config, error) {
	c := Default

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read Config: %w", err)
	}
	err = yaml.Unmarshal(bytes, &c)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal Config: %w", err)
	}

	validate := validator.New()
	err = validate.Struct(c)
	if err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &c, nil
}

// NewFromFile loads the config at path, falling back to Default when the
// file does not exist.
func NewFromFile(path string) (*Config, error) {
	expandedPath, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(expandedPath)
	if err != nil {
		c := Default
		return &c, nil
	}
	defer f.Close()

	return NewFromReader(f)
}
