package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/oops"
	"github.com/tmpe/globalconfig/lib/globalconfig"
	"gopkg.in/yaml.v3"
)

var (
	// ErrDecode marks persisted content that could not be turned into a Config.
	ErrDecode = errors.New("malformed global config")
	// ErrEncode marks a Config that could not be serialized.
	ErrEncode = errors.New("could not encode global config")
	// ErrUnknownFormat is returned by ByName for unsupported format names.
	ErrUnknownFormat = errors.New("unknown global config format")
)

// Codec encodes and decodes the global config payload.
type Codec interface {
	Name() string
	Encode(cfg *globalconfig.Config) ([]byte, error)
	Decode(data []byte) (*globalconfig.Config, error)
}

// Format names accepted by ByName.
const (
	FormatXML  = "xml"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ByName returns the codec for name (case-insensitive). An empty name selects XML.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatXML:
		return XML{}, nil
	case FormatYAML, "yml":
		return YAML{}, nil
	case FormatTOML:
		return TOML{}, nil
	default:
		return nil, oops.Wrapf(ErrUnknownFormat, "format %q", name)
	}
}

// XML is the native GlobalConfig document format.
type XML struct{}

func (XML) Name() string { return FormatXML }

func (XML) Encode(cfg *globalconfig.Config) ([]byte, error) {
	body, err := xml.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, oops.Wrapf(errors.Join(ErrEncode, err), "marshalling xml")
	}
	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (XML) Decode(data []byte) (*globalconfig.Config, error) {
	return decodeOnDefaults(data, FormatXML, func(b []byte, cfg *globalconfig.Config) error {
		return xml.Unmarshal(b, cfg)
	})
}

// YAML stores the payload as a flat YAML mapping.
type YAML struct{}

func (YAML) Name() string { return FormatYAML }

func (YAML) Encode(cfg *globalconfig.Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, oops.Wrapf(errors.Join(ErrEncode, err), "marshalling yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, oops.Wrapf(errors.Join(ErrEncode, err), "flushing yaml")
	}
	return buf.Bytes(), nil
}

func (YAML) Decode(data []byte) (*globalconfig.Config, error) {
	return decodeOnDefaults(data, FormatYAML, func(b []byte, cfg *globalconfig.Config) error {
		return yaml.Unmarshal(b, cfg)
	})
}

// TOML stores the payload as a flat TOML table.
type TOML struct{}

func (TOML) Name() string { return FormatTOML }

func (TOML) Encode(cfg *globalconfig.Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, oops.Wrapf(errors.Join(ErrEncode, err), "marshalling toml")
	}
	return out, nil
}

func (TOML) Decode(data []byte) (*globalconfig.Config, error) {
	return decodeOnDefaults(data, FormatTOML, func(b []byte, cfg *globalconfig.Config) error {
		return toml.Unmarshal(b, cfg)
	})
}

// decodeOnDefaults unmarshals data over a default Config. DebugSwitches is
// cleared first because list decoders append to an existing slice; it gets
// the defaults back only when the document has no DebugSwitches at all, an
// empty list is kept.
func decodeOnDefaults(data []byte, format string, unmarshal func([]byte, *globalconfig.Config) error) (*globalconfig.Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, oops.Wrapf(ErrDecode, "empty %s document", format)
	}

	cfg := globalconfig.Default()
	cfg.DebugSwitches = nil
	if err := unmarshal(data, cfg); err != nil {
		return nil, oops.Wrapf(errors.Join(ErrDecode, err), "parsing %s document", format)
	}
	if cfg.DebugSwitches == nil {
		cfg.DebugSwitches = globalconfig.DefaultDebugSwitches()
	}
	cfg.XMLName = xml.Name{}
	return cfg, nil
}
