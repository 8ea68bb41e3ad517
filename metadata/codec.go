package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/git-pkgs/sysdeps/internal/core"
)

// Decode reads one package metadata document and validates it.
func Decode(r io.Reader) (*core.PackageMetadata, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var pkg core.PackageMetadata
	if err := dec.Decode(&pkg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty metadata document")
		}
		return nil, err
	}
	if err := Validate(&pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Unmarshal decodes a package metadata document from data.
func Unmarshal(data []byte) (*core.PackageMetadata, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes pkg as YAML. Empty uuids are left out.
func Encode(w io.Writer, pkg *core.PackageMetadata) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pkg); err != nil {
		return err
	}
	return enc.Close()
}

// Marshal encodes pkg to bytes.
func Marshal(pkg *core.PackageMetadata) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, pkg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks that uuids are well formed and that every artifact has
// coordinates and an absolute path.
func Validate(pkg *core.PackageMetadata) error {
	if pkg.UUID != "" {
		if _, err := uuid.Parse(pkg.UUID); err != nil {
			return fmt.Errorf("package uuid %q: %w", pkg.UUID, err)
		}
	}
	for i, a := range pkg.Artifacts {
		if a.GroupID == "" || a.ArtifactID == "" {
			return fmt.Errorf("artifact %d: groupId and artifactId are required", i)
		}
		if !filepath.IsAbs(a.Path) {
			return fmt.Errorf("artifact %s: path %q is not absolute", a.Identity, a.Path)
		}
		if a.UUID != "" {
			if _, err := uuid.Parse(a.UUID); err != nil {
				return fmt.Errorf("artifact %s: uuid %q: %w", a.Identity, a.UUID, err)
			}
		}
	}
	return nil
}

// AssignUUIDs gives the package and each of its artifacts a random uuid
// where none is set.
func AssignUUIDs(pkg *core.PackageMetadata) {
	if pkg.UUID == "" {
		pkg.UUID = uuid.NewString()
	}
	for i := range pkg.Artifacts {
		if pkg.Artifacts[i].UUID == "" {
			pkg.Artifacts[i].UUID = uuid.NewString()
		}
	}
}
