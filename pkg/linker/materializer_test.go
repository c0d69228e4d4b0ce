package linker

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsymtools/buildlink/pkg/testutil"
	"github.com/dsymtools/buildlink/pkg/types"
)

// captureLog swaps the global logger for a buffer at info level, the
// level a default invocation runs at.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestApplyCreatesLink(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("elf"))
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, false)
	require.NoError(t, m.Apply(plan))

	assert.True(t, testutil.Exists(t, fs, "/debug/.build-id/ab/cdef0123.debug"))
	content, err := fs.ReadFile("/debug/.build-id/ab/cdef0123.debug")
	require.NoError(t, err)
	assert.Equal(t, []byte("elf"), content)
}

func TestApplyReplacesStaleEntry(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("new"))
	testutil.MustWriteFile(t, fs, "/debug/.build-id/ab/cdef0123.debug", []byte("stale"))
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, false)
	require.NoError(t, m.Apply(plan))

	content, err := fs.ReadFile("/debug/.build-id/ab/cdef0123.debug")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), content)
}

func TestApplyIsIdempotent(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("elf"))
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, false)
	require.NoError(t, m.Apply(plan))
	require.NoError(t, m.Apply(plan))

	entries, err := fs.ReadDir("/debug/.build-id/ab")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApplyDryRunMutatesNothing(t *testing.T) {
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("elf"))
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, true)
	require.NoError(t, m.Apply(plan))

	assert.False(t, testutil.Exists(t, fs, "/debug/.build-id"))
	assert.False(t, testutil.Exists(t, fs, "/debug/.build-id/ab/cdef0123.debug"))
}

func TestApplyDryRunReportsEachWouldBeLink(t *testing.T) {
	buf := captureLog(t)
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("elf"))
	testutil.MustWriteFile(t, fs, "/debug/bin/cp.debug", []byte("elf"))

	m := NewMaterializer(fs, true)
	for _, id := range []types.BuildID{
		{Prefix: "ab", Rest: "cdef0123"},
		{Prefix: "cd", Rest: "ef012345"},
	} {
		plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug", id)
		require.NoError(t, err)
		require.NoError(t, m.Apply(plan))
	}

	out := buf.String()
	assert.Contains(t, out, "would link")
	assert.Contains(t, out, "/debug/.build-id/ab/cdef0123.debug")
	assert.Contains(t, out, "/debug/.build-id/cd/ef012345.debug")
}

func TestApplyLiveRunReportsLink(t *testing.T) {
	buf := captureLog(t)
	fs := testutil.NewTestFS()
	testutil.MustWriteFile(t, fs, "/debug/bin/ls.debug", []byte("elf"))
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/ls.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, false)
	require.NoError(t, m.Apply(plan))

	out := buf.String()
	assert.Contains(t, out, "linked")
	assert.Contains(t, out, "/debug/.build-id/ab/cdef0123.debug")
}

func TestApplyMissingSourceFails(t *testing.T) {
	fs := testutil.NewTestFS()
	plan, err := NewPlan("/debug/.build-id", "/debug/bin/gone.debug",
		types.BuildID{Prefix: "ab", Rest: "cdef0123"})
	require.NoError(t, err)

	m := NewMaterializer(fs, false)
	assert.Error(t, m.Apply(plan))
}
