package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.May, 4, 8, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "prefs.yaml"))
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestLoad_Defaults(t *testing.T) {
	s := newTestStore(t)

	prefs, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(fixedNow), prefs)
	assert.False(t, prefs.Consent.Granted)
	assert.Equal(t, "deny", prefs.Consent.Decision)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, "default-local-user", prefs.UserID)

	// Loading never creates the file
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_FillsMissingFields(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("consent:\n  granted: true\n"), 0o600))

	prefs, err := s.Load()
	require.NoError(t, err)
	assert.True(t, prefs.Consent.Granted)
	assert.Equal(t, "allow", prefs.Consent.Decision)
	assert.Equal(t, "cli", prefs.Consent.Source)
	assert.Equal(t, schema.LocalMode, prefs.AnalysisMode)
	assert.NotNil(t, prefs.ExternalPermissions)
}

func TestLoad_Invalid(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("consent: [unclosed"), 0o600))

	_, err := s.Load()
	assert.ErrorContains(t, err, "failed to parse preferences")
}

func TestRecordLastUsed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.RecordLastUsed("/tmp/archives", schema.ExternalMode))

	prefs, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/archives", prefs.LastOpenedPath)
	assert.Equal(t, schema.ExternalMode, prefs.AnalysisMode)
	assert.False(t, prefs.Consent.Granted)
}

func TestConsentLifecycle(t *testing.T) {
	s := newTestStore(t)

	_, err := s.EnsureConsent()
	assert.True(t, errors.Is(err, contract.ErrConsentRequired))

	state, err := s.GrantConsent("", "")
	require.NoError(t, err)
	assert.True(t, state.Granted)
	assert.Equal(t, "allow", state.Decision)
	assert.Equal(t, fixedNow, state.Timestamp)

	state, err = s.EnsureConsent()
	require.NoError(t, err)
	assert.Equal(t, "allow", state.Decision)

	state, err = s.GrantConsent("ALLOW_ALWAYS", "test")
	require.NoError(t, err)
	assert.Equal(t, "allow_always", state.Decision)
	assert.Equal(t, "test", state.Source)

	state, err = s.RevokeConsent("deny_once", "")
	require.NoError(t, err)
	assert.False(t, state.Granted)
	assert.Equal(t, "deny_once", state.Decision)

	_, err = s.EnsureConsent()
	assert.ErrorIs(t, err, contract.ErrConsentRequired)
}

func TestConsent_InvalidDecision(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GrantConsent("deny", "")
	assert.ErrorContains(t, err, "invalid consent decision")
	_, err = s.RevokeConsent("allow", "")
	assert.ErrorContains(t, err, "invalid consent decision")
}

func TestExternalPermission(t *testing.T) {
	s := newTestStore(t)
	types := []string{"file-metadata", "commit-log"}

	err := s.EnsureExternalPermission("archive-analysis", types, "ranking")
	assert.ErrorIs(t, err, contract.ErrPermissionDenied)

	perm, err := s.GrantPermission("archive-analysis", []string{" Commit-Log", "file-metadata", "file-metadata"}, "ranking")
	require.NoError(t, err)
	assert.Equal(t, []string{"commit-log", "file-metadata"}, perm.DataTypes)
	assert.NoError(t, s.EnsureExternalPermission("archive-analysis", types, "ranking"))

	err = s.EnsureExternalPermission("archive-analysis", []string{"source-code"}, "ranking")
	assert.ErrorIs(t, err, contract.ErrPermissionDenied)
	assert.ErrorContains(t, err, "source-code")

	// A grant without data types covers everything
	_, err = s.GrantPermission("llm", nil, "summaries")
	require.NoError(t, err)
	assert.NoError(t, s.EnsureExternalPermission("llm", []string{"anything"}, "summaries"))

	require.NoError(t, s.RevokePermission("archive-analysis"))
	assert.ErrorIs(t, s.EnsureExternalPermission("archive-analysis", types, "ranking"), contract.ErrPermissionDenied)

	_, err = s.GrantPermission("  ", nil, "")
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GrantConsent("allow", "")
	require.NoError(t, err)

	prefs, err := s.Reset()
	require.NoError(t, err)
	assert.False(t, prefs.Consent.Granted)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, prefs, loaded)
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, contract.GetPreferencesFilePath(), NewFileStore("").Path())
}
