package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/git-pkgs/sysdeps/internal/core"
)

// FileName is the name of a configuration layer document.
const FileName = "configuration.yaml"

// DefaultLayers returns the standard layer documents, most dominant first:
// the user's, the system administrator's and the distribution defaults. The
// system layers are looked up below root.
func DefaultLayers(root string) []string {
	if root == "" {
		root = "/"
	}

	var layers []string
	if dir := userConfigDir(); dir != "" {
		layers = append(layers, filepath.Join(dir, "sysdeps", FileName))
	}
	return append(layers,
		filepath.Join(root, "etc", "sysdeps", FileName),
		filepath.Join(root, "usr", "share", "sysdeps", FileName),
	)
}

func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

// LoadLayers reads the documents at paths, most dominant first, and merges
// them. Missing files are skipped. If any document is malformed nothing is
// merged and the *core.ConfigParseError is returned.
func LoadLayers(paths []string) (*core.Configuration, error) {
	layers := make([]*core.Configuration, 0, len(paths))
	for _, path := range paths {
		cfg, err := Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		layers = append(layers, cfg)
	}

	merged := core.MergeAll(layers...)
	if merged == nil {
		merged = &core.Configuration{}
	}
	return merged, nil
}
