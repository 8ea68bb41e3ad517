package owner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/git-pkgs/sysdeps/internal/core"
)

// DefaultCommand lists every installed file and its package, one
// "path<TAB>package" record per line.
var DefaultCommand = []string{"rpm", "-qa", "--qf", "[%{FILENAMES}\t%{NAME}\n]"}

// CommandQuerier runs an external command and parses its tab-separated output.
type CommandQuerier struct {
	Args []string
}

// NewCommandQuerier returns a querier for args, or DefaultCommand when args
// is empty.
func NewCommandQuerier(args ...string) *CommandQuerier {
	if len(args) == 0 {
		args = DefaultCommand
	}
	return &CommandQuerier{Args: args}
}

// Query runs the command. A non-zero exit status is a failure.
func (q *CommandQuerier) Query(ctx context.Context) ([]Record, error) {
	if len(q.Args) == 0 {
		return nil, &core.OwnershipQueryFailure{Err: errors.New("no command configured")}
	}

	cmd := exec.CommandContext(ctx, q.Args[0], q.Args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("exit status %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, &core.OwnershipQueryFailure{Command: q.Args, Err: err}
	}

	records, err := ParseRecords(out)
	if err != nil {
		return nil, &core.OwnershipQueryFailure{Command: q.Args, Err: err}
	}
	return records, nil
}

// ParseRecords parses "path<TAB>package" lines. Blank lines and lines
// without a tab (such as "(contains no files)") are skipped.
func ParseRecords(data []byte) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		path, pkg, ok := strings.Cut(scanner.Text(), "\t")
		if !ok || path == "" || pkg == "" {
			continue
		}
		records = append(records, Record{Path: path, Package: strings.TrimSpace(pkg)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading query output: %w", err)
	}
	return records, nil
}
