package echo

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ChainConfig describes a whole chain: the head, the taps in order, and the tail.
type ChainConfig struct {
	Head Settings   `yaml:"head"`
	Taps []Settings `yaml:"taps,omitempty"`
	Tail Settings   `yaml:"tail"`
}

// DefaultChainConfig returns a chain with the given number of taps, all at defaults.
func DefaultChainConfig(taps int) ChainConfig {
	cfg := ChainConfig{Head: DefaultSettings(), Tail: DefaultSettings()}
	for range taps {
		cfg.Taps = append(cfg.Taps, DefaultSettings())
	}

	return cfg
}

// Validate checks every unit's settings.
func (c ChainConfig) Validate() error {
	if err := c.Head.Validate(); err != nil {
		return fmt.Errorf("head: %w", err)
	}

	for i, t := range c.Taps {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tap %d: %w", i+1, err)
		}
	}

	if err := c.Tail.Validate(); err != nil {
		return fmt.Errorf("tail: %w", err)
	}

	return nil
}

// UnmarshalYAML fills unspecified fields with their defaults.
func (s *Settings) UnmarshalYAML(node *yaml.Node) error {
	type plain Settings

	p := plain(DefaultSettings())
	if err := node.Decode(&p); err != nil {
		return err
	}

	*s = Settings(p)

	return nil
}

// UnmarshalYAML fills an omitted head or tail with defaults.
func (c *ChainConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain ChainConfig

	p := plain(DefaultChainConfig(0))
	if err := node.Decode(&p); err != nil {
		return err
	}

	*c = ChainConfig(p)

	return nil
}

// LoadConfig decodes and validates a YAML chain description.
func LoadConfig(r io.Reader) (ChainConfig, error) {
	var cfg ChainConfig

	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultChainConfig(0), nil
		}

		return ChainConfig{}, fmt.Errorf("decode chain config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return ChainConfig{}, fmt.Errorf("invalid chain config: %w", err)
	}

	return cfg, nil
}

// MarshalConfig encodes cfg as YAML.
func MarshalConfig(cfg ChainConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
