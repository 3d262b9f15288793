package conffile

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/textbase"
)

// Format is a configuration file format.
type Format string

// Supported formats
const (
	TOML       Format = "toml"
	NestedText Format = "nt"
)

// FormatOf determines the format of a configuration file by its suffix.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return TOML, nil
	case ".nt":
		return NestedText, nil
	}
	return "", fmt.Errorf("%w: do not know how to decode %q", textbase.ErrInvalidArgument, path)
}

// Load reads a configuration file. The format is chosen by the file's suffix.
func Load(path string) (*koanfadapter.KConf, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err = k.Load(file.Provider(path), parserFor(format)); err != nil {
		tracer().Errorf("error loading configuration %q: %v", path, err)
		return nil, err
	}
	tracer().Infof("loaded configuration from %q", path)
	return koanfadapter.New(k, "", nil), nil
}

// Parse reads a configuration from data.
func Parse(data []byte, format Format) (*koanfadapter.KConf, error) {
	parser := parserFor(format)
	if parser == nil {
		return nil, fmt.Errorf("%w: unknown format %q", textbase.ErrInvalidArgument, format)
	}
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, err
	}
	return koanfadapter.New(k, "", nil), nil
}

// LoadConfig reads a configuration file and extracts the textbase settings.
func LoadConfig(path string) (textbase.Config, error) {
	conf, err := Load(path)
	if err != nil {
		return textbase.DefaultConfig(), err
	}
	return textbase.ConfigFrom(conf), nil
}

func parserFor(format Format) koanf.Parser {
	switch format {
	case TOML:
		return TOMLParser()
	case NestedText:
		return koanfadapter.Parser()
	}
	return nil
}

// --- TOML ------------------------------------------------------------------

// TOMLP implements a TOML parser for koanf.
type TOMLP struct{}

// TOMLParser returns a TOML parser.
func TOMLParser() *TOMLP {
	return &TOMLP{}
}

// Unmarshal parses TOML bytes into a nested map.
func (p *TOMLP) Unmarshal(b []byte) (map[string]interface{}, error) {
	var m map[string]interface{}
	md, err := toml.Decode(string(b), &m)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		tracer().Infof("configuration keys not decoded: %v", undecoded)
	}
	return m, nil
}

// Marshal encodes a config map as TOML.
func (p *TOMLP) Marshal(m map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
