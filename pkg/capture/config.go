package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pion/screencapture/pkg/prop"
	"gopkg.in/yaml.v3"
)

// Config chooses what a Capturer grabs and how often a Threaded capturer
// does so.
type Config struct {
	// Capture is tried in order, the first specification matching the
	// display resolution wins.
	Capture []prop.Specification `yaml:"capture" mapstructure:"capture"`
	// Rate is the number of captures per second. Zero or less pauses a
	// Threaded capturer.
	Rate float64 `yaml:"rate" mapstructure:"rate"`
}

// ParseConfig decodes a YAML document. Unknown keys are rejected, an empty
// document gives the zero Config.
func ParseConfig(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("capture: invalid config: %w", err)
	}
	return c, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(b)
}

// YAML encodes c in the format ParseConfig reads.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Config) clone() Config {
	c.Capture = append([]prop.Specification(nil), c.Capture...)
	return c
}
