// Package subst replaces archives in a build tree with symbolic links to the
// system-installed copies of the same artifacts.
package subst

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
	"github.com/git-pkgs/sysdeps/metrics"
)

// DefaultTypes are the file extensions the walker inspects.
var DefaultTypes = []string{"jar", "war", "ear"}

// tempSuffix names the link created next to a file before it is renamed over it.
const tempSuffix = ".sysdeps~"

// MetadataSource finds the installed artifact for an identity.
type MetadataSource interface {
	GetMetadataFor(id core.Identity) (core.ArtifactMetadata, bool)
}

// Substitution is one archive that was (or in dry-run mode would be)
// replaced by a link.
type Substitution struct {
	Path     string
	Target   string
	Identity core.Identity
}

// Skip is an accepted archive that was left in place.
type Skip struct {
	Path   string
	Reason string
	Err    error
}

// Report lists what a walk did. Installed holds archives that already are
// the installed files.
type Report struct {
	Replaced  []Substitution
	Installed []string
	Skipped   []Skip
}

// Walker substitutes archives below a directory.
type Walker struct {
	source  MetadataSource
	types   []string
	root    string
	dryRun  bool
	strict  bool
	logger  *slog.Logger
	metrics *metrics.Collector
	device  func(path string) (uint64, error)
}

// Option configures a Walker.
type Option func(*Walker)

// WithTypes sets the accepted file extensions.
func WithTypes(types ...string) Option {
	return func(w *Walker) {
		w.types = types
	}
}

// WithRoot looks installed files up below root. Links still point at the
// path recorded in the metadata.
func WithRoot(root string) Option {
	return func(w *Walker) {
		w.root = root
	}
}

// DryRun reports substitutions without touching the filesystem.
func DryRun(enabled bool) Option {
	return func(w *Walker) {
		w.dryRun = enabled
	}
}

// Strict makes Walk fail when any accepted archive was not substituted.
func Strict(enabled bool) Option {
	return func(w *Walker) {
		w.strict = enabled
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = l
	}
}

func WithMetrics(c *metrics.Collector) Option {
	return func(w *Walker) {
		w.metrics = c
	}
}

// WithDeviceFunc replaces the function reporting which device holds a path.
func WithDeviceFunc(fn func(path string) (uint64, error)) Option {
	return func(w *Walker) {
		w.device = fn
	}
}

// New creates a walker resolving coordinates through source.
func New(source MetadataSource, opts ...Option) *Walker {
	w := &Walker{
		source: source,
		types:  DefaultTypes,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		device: deviceOf,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IncompleteError is returned by a strict walk that left archives in place.
type IncompleteError struct {
	Skipped []Skip
}

func (e *IncompleteError) Error() string {
	paths := make([]string, len(e.Skipped))
	for i, s := range e.Skipped {
		paths[i] = s.Path
	}
	return fmt.Sprintf("%d artifacts were not substituted: %s", len(paths), strings.Join(paths, ", "))
}

// Walk visits every regular file below dir in lexical order. Symbolic links
// are neither followed nor replaced, so a second walk over the same tree
// makes no substitutions. Paths below dir that cannot be read are skipped
// and reported; only an unreadable dir or a cancelled ctx ends the walk.
func (w *Walker) Walk(ctx context.Context, dir string) (*Report, error) {
	report := &Report{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Warn("skipping unreadable path", "path", path, "error", err)
			w.metrics.RecordSubstitution(metrics.OutcomeFailed)
			report.Skipped = append(report.Skipped, Skip{
				Path:   path,
				Reason: "unreadable",
				Err:    &core.SubstitutionIOError{Path: path, Err: err},
			})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !w.accepts(d.Name()) {
			return nil
		}
		w.visit(path, report)
		return nil
	})
	if err != nil {
		return report, err
	}

	w.logger.Info("substitution finished",
		"dir", dir,
		"replaced", len(report.Replaced),
		"skipped", len(report.Skipped),
		"dry_run", w.dryRun)

	if w.strict && len(report.Skipped) > 0 {
		return report, &IncompleteError{Skipped: report.Skipped}
	}
	return report, nil
}

func (w *Walker) accepts(name string) bool {
	if strings.HasSuffix(name, tempSuffix) {
		return false
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return ext != "" && slices.Contains(w.types, ext)
}

func (w *Walker) visit(path string, report *Report) {
	skip := func(outcome, reason string, err error) {
		w.metrics.RecordSubstitution(outcome)
		report.Skipped = append(report.Skipped, Skip{Path: path, Reason: reason, Err: err})
	}

	id, err := ReadIdentity(path)
	if err != nil {
		w.logger.Debug("no artifact coordinates", "path", path, "error", err)
		skip(metrics.OutcomeNoIdentity, "no artifact coordinates", err)
		return
	}
	id.Extension = strings.TrimPrefix(filepath.Ext(path), ".")

	meta, ok := w.source.GetMetadataFor(id)
	if !ok {
		w.logger.Debug("no installed artifact", "path", path, "artifact", id.String())
		skip(metrics.OutcomeNoMetadata, "no installed artifact", nil)
		return
	}

	target := meta.Path
	installed := target
	if w.root != "" {
		installed = filepath.Join(w.root, target)
	}

	if sameFile(path, installed) {
		w.metrics.RecordSubstitution(metrics.OutcomeSameFile)
		report.Installed = append(report.Installed, path)
		return
	}

	if _, err := os.Stat(installed); err != nil {
		w.logger.Warn("installed artifact is missing", "path", path, "target", installed, "error", err)
		skip(metrics.OutcomeFailed, "installed artifact is missing",
			&core.SubstitutionIOError{Path: path, Target: installed, Err: err})
		return
	}

	if err := w.sameDevice(path, installed); err != nil {
		w.logger.Warn("not substituting across devices", "path", path, "target", installed)
		skip(metrics.OutcomeCrossDevice, "target on another device", err)
		return
	}

	if !w.dryRun {
		if err := replace(path, target); err != nil {
			w.logger.Warn("substitution failed", "path", path, "target", target, "error", err)
			skip(metrics.OutcomeFailed, "link could not be created", err)
			return
		}
	}

	w.logger.Debug("substituted artifact", "path", path, "target", target, "artifact", id.String())
	w.metrics.RecordSubstitution(metrics.OutcomeReplaced)
	report.Replaced = append(report.Replaced, Substitution{Path: path, Target: target, Identity: id})
}

func (w *Walker) sameDevice(path, target string) error {
	here, err := w.device(filepath.Dir(path))
	if err != nil {
		return &core.SubstitutionIOError{Path: path, Target: target, Err: err}
	}
	there, err := w.device(target)
	if err != nil {
		return &core.SubstitutionIOError{Path: path, Target: target, Err: err}
	}
	if here != there {
		return &core.SubstitutionIOError{Path: path, Target: target, Err: core.ErrCrossDevice}
	}
	return nil
}

func sameFile(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// replace puts a symbolic link to target at path. The link is created under
// a temporary name in the same directory and renamed over path, so path
// always names either the original file or the link.
func replace(path, target string) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+tempSuffix)
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &core.SubstitutionIOError{Path: path, Target: target, Err: err}
	}
	if err := os.Symlink(target, tmp); err != nil {
		return &core.SubstitutionIOError{Path: path, Target: target, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &core.SubstitutionIOError{Path: path, Target: target, Err: err}
	}
	return nil
}
