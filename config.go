package rotolog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	kjson "github.com/knadh/koanf/parsers/json"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/rotolog/rotolog/rotation"
)

// Format identifies a configuration file encoding.
type Format string

// Supported configuration formats.
const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// Defaults applied to Config fields left empty.
const (
	DefaultLevel  = "info"
	DefaultFormat = "text"
)

// ErrUnknownFormat is returned for configuration files this package
// cannot decode.
var ErrUnknownFormat = errors.New("unknown config format")

// Config describes a complete logging setup: optional console output plus an
// optional rotating file sink. Decode one from YAML/JSON with Load or Parse,
// or assemble one with the Builder.
type Config struct {
	Console bool        `koanf:"console" json:"console" yaml:"console"`
	Level   string      `koanf:"level"   json:"level"   yaml:"level"`
	Format  string      `koanf:"format"  json:"format"  yaml:"format"` // "text" or "json".
	File    *FileConfig `koanf:"file"    json:"file"    yaml:"file"`
}

// FileConfig describes the rotating file sink. The Rotation field accepts
// either a string shorthand ("never", "size", "time", "both") or a structured
// map; see rotation.Decode for the exact shapes.
type FileConfig struct {
	Path          string           `koanf:"path"           json:"path"           yaml:"path"`
	Rotation      rotation.Trigger `koanf:"rotation"       json:"rotation"       yaml:"rotation"`
	Buffered      bool             `koanf:"buffered"       json:"buffered"       yaml:"buffered"`
	FlushInterval time.Duration    `koanf:"flush_interval" json:"flush_interval" yaml:"flush_interval"`
}

// NewConfig returns a Config with the defaults filled in: no console, level
// "info", text format, no file sink.
func NewConfig() *Config {
	return &Config{Level: DefaultLevel, Format: DefaultFormat}
}

// Load reads a configuration file, detecting the format from the extension
// (.yaml, .yml or .json).
func Load(path string) (*Config, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data, format)
}

// Parse decodes configuration bytes in the given format.
func Parse(data []byte, format Format) (*Config, error) {
	var parser koanf.Parser

	switch format {
	case YAML:
		parser = kyaml.Parser()
	case JSON:
		parser = kjson.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	config := NewConfig()

	err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           config,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				rotation.DecodeHook(),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config, nil
}

// Validate checks the parts of the configuration that would otherwise fail
// later, during Init.
func (c *Config) Validate() error {
	if c.Format != "" && c.Format != DefaultFormat && c.Format != "json" {
		return fmt.Errorf("%w: log format %q, use text or json", ErrUnknownFormat, c.Format)
	}

	if c.File != nil {
		if c.File.Path == "" {
			return ErrNoFilepath
		}

		if err := c.File.Rotation.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}
