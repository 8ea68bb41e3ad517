// Package config reads, writes and layers YAML configuration documents.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/git-pkgs/sysdeps/internal/core"
)

// Decode reads one configuration document. Unknown keys are rejected. An
// empty document decodes to an empty configuration. Errors are
// *core.ConfigParseError.
func Decode(r io.Reader) (*core.Configuration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg core.Configuration
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &core.ConfigParseError{Err: err}
	}
	return &cfg, nil
}

// Unmarshal decodes a configuration document from data.
func Unmarshal(data []byte) (*core.Configuration, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes cfg as YAML. Unset settings are left out.
func Encode(w io.Writer, cfg *core.Configuration) error {
	if cfg == nil {
		cfg = &core.Configuration{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal encodes cfg to bytes.
func Marshal(cfg *core.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reads the configuration document at path.
func Load(path string) (*core.Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cfg, err := Decode(f)
	if err != nil {
		var parseErr *core.ConfigParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *core.Configuration) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
