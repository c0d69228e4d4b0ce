package buildid

import (
	"bufio"
	"context"
	"io"
	"os/exec"

	"github.com/dsymtools/buildlink/pkg/errors"
	"github.com/dsymtools/buildlink/pkg/logging"
	"github.com/dsymtools/buildlink/pkg/types"
)

// ReadelfSource extracts build identifiers by running `<tool> -n <path>`
// and scanning the note output. Tool is typically "readelf" or a
// cross-toolchain variant of it.
type ReadelfSource struct {
	Tool string
}

// NewReadelfSource returns a Source backed by the named introspection tool.
func NewReadelfSource(tool string) *ReadelfSource {
	return &ReadelfSource{Tool: tool}
}

// Extract implements Source. A tool that cannot be started is an
// environment misconfiguration and surfaces as an error; a tool that runs
// but produces no matching line (including a nonzero exit) is the
// per-file "no identifier" outcome. Cancellation propagates as the
// context's error. Scanning stops at the first match.
func (s *ReadelfSource) Extract(ctx context.Context, path string) (types.BuildID, bool, error) {
	logger := logging.GetLogger("buildid")

	cmd := exec.CommandContext(ctx, s.Tool, "-n", path)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return types.BuildID{}, false, errors.Wrap(err, errors.ErrExtract, "cannot open stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return types.BuildID{}, false, errors.Wrapf(err, errors.ErrExtract, "cannot run %s", s.Tool)
	}

	var id types.BuildID
	found := false
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if id, found = ParseLine(scanner.Text()); found {
			break
		}
	}
	scanErr := scanner.Err()

	// Drain the remaining output so the subprocess can exit, then reap
	// it. A nonzero exit produced no identifier and is handled by the
	// not-found path; any other invocation failure is fatal.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	// A canceled context kills the tool mid-run, which would otherwise
	// surface as a spurious "no identifier" outcome.
	if err := ctx.Err(); err != nil {
		return types.BuildID{}, false, err
	}
	if waitErr != nil {
		if _, ok := waitErr.(*exec.ExitError); !ok {
			return types.BuildID{}, false, errors.Wrapf(waitErr, errors.ErrExtract, "running %s", s.Tool)
		}
		logger.Debug().Err(waitErr).Str("path", path).Str("tool", s.Tool).Msg("introspection tool exited nonzero")
	}

	if scanErr != nil {
		return types.BuildID{}, false, errors.Wrapf(scanErr, errors.ErrExtract, "reading %s output", s.Tool)
	}
	return id, found, nil
}
