package linker

import (
	"github.com/rs/zerolog"

	"github.com/dsymtools/buildlink/pkg/errors"
	"github.com/dsymtools/buildlink/pkg/logging"
	"github.com/dsymtools/buildlink/pkg/types"
)

// Materializer applies link plans to a filesystem. In dry-run mode it
// only reports what would be linked and performs no mutation.
type Materializer struct {
	fs     types.FS
	dryRun bool
	logger zerolog.Logger
}

// NewMaterializer creates a Materializer over the given filesystem.
func NewMaterializer(fs types.FS, dryRun bool) *Materializer {
	return &Materializer{
		fs:     fs,
		dryRun: dryRun,
		logger: logging.GetLogger("linker"),
	}
}

// Apply creates the hard link described by plan. The parent directory is
// created unconditionally, tolerating pre-existence; a stale entry at the
// destination (including a dangling link) is removed first so reruns
// replace rather than accumulate. Errors propagate, there is no retry:
// a rerun is idempotent and will repair partial state.
func (m *Materializer) Apply(plan Plan) error {
	if m.dryRun {
		m.logger.Info().
			Str("source", plan.Source).
			Str("link", plan.Path).
			Msg("would link (dry-run)")
		return nil
	}

	if err := m.fs.MkdirAll(plan.Dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create index directory %s", plan.Dir)
	}

	if _, err := m.fs.Lstat(plan.Path); err == nil {
		// Two distinct binaries reporting the same build ID end up
		// here too; last write wins, but leave a trace of it.
		m.logger.Debug().Str("link", plan.Path).Msg("replacing existing entry")
		if err := m.fs.Remove(plan.Path); err != nil {
			return errors.Wrapf(err, errors.ErrLinkRemove, "cannot remove stale entry %s", plan.Path)
		}
	}

	if err := m.fs.Link(plan.Source, plan.Path); err != nil {
		return errors.Wrapf(err, errors.ErrLinkCreate, "cannot link %s to %s", plan.Source, plan.Path)
	}

	m.logger.Info().
		Str("source", plan.Source).
		Str("link", plan.Path).
		Msg("linked")
	return nil
}
