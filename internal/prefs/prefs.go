// Package prefs keeps the user preference record and the consent and
// permission state consulted before archives are analyzed.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"gopkg.in/yaml.v3"
)

// Preference defaults.
const (
	DefaultTheme  = "light"
	DefaultUserID = "default-local-user"
	DefaultSource = "cli"
)

// Accepted consent decisions.
var (
	GrantDecisions  = []string{"allow", "allow_once", "allow_always"}
	RevokeDecisions = []string{"deny", "deny_once", "deny_always"}
)

// FileStore is a YAML-backed preference record.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

var (
	_ contract.PreferenceStore = &FileStore{} // Compile-time check
	_ contract.ConsentGate     = &FileStore{} // Compile-time check
)

// NewFileStore returns a store backed by path. An empty path uses the default location.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = contract.GetPreferencesFilePath()
	}
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file location.
func (s *FileStore) Path() string { return s.path }

// DefaultPreferences returns a fresh record with consent denied.
func DefaultPreferences(now time.Time) schema.Preferences {
	return schema.Preferences{
		AnalysisMode: schema.LocalMode,
		Theme:        DefaultTheme,
		UserID:       DefaultUserID,
		Consent: schema.ConsentState{
			Granted:   false,
			Decision:  "deny",
			Timestamp: now.UTC(),
			Source:    DefaultSource,
		},
		ExternalPermissions: map[string]schema.Permission{},
	}
}

// Load reads the record, falling back to defaults when the file is absent.
func (s *FileStore) Load() (schema.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (schema.Preferences, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultPreferences(s.now()), nil
	}
	if err != nil {
		return schema.Preferences{}, fmt.Errorf("failed to read preferences %s: %w", s.path, err)
	}

	var prefs schema.Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return schema.Preferences{}, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}
	fillDefaults(&prefs, s.now())
	return prefs, nil
}

// fillDefaults restores fields that an older or hand-edited file left empty.
func fillDefaults(p *schema.Preferences, now time.Time) {
	if p.AnalysisMode == "" {
		p.AnalysisMode = schema.LocalMode
	}
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if p.UserID == "" {
		p.UserID = DefaultUserID
	}
	if p.Consent.Decision == "" {
		if p.Consent.Granted {
			p.Consent.Decision = "allow"
		} else {
			p.Consent.Decision = "deny"
		}
	}
	if p.Consent.Source == "" {
		p.Consent.Source = DefaultSource
	}
	if p.Consent.Timestamp.IsZero() {
		p.Consent.Timestamp = now.UTC()
	}
	if p.ExternalPermissions == nil {
		p.ExternalPermissions = map[string]schema.Permission{}
	}
}

// Save writes the record atomically.
func (s *FileStore) Save(prefs schema.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(prefs)
}

func (s *FileStore) save(prefs schema.Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace preferences %s: %w", s.path, err)
	}
	return nil
}

// update applies fn to the loaded record and saves the result.
func (s *FileStore) update(fn func(p *schema.Preferences) error) (schema.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.load()
	if err != nil {
		return schema.Preferences{}, err
	}
	if err := fn(&prefs); err != nil {
		return schema.Preferences{}, err
	}
	return prefs, s.save(prefs)
}

// Reset restores the defaults on disk.
func (s *FileStore) Reset() (schema.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs := DefaultPreferences(s.now())
	return prefs, s.save(prefs)
}

// RecordLastUsed stores the directory and resolved mode of the latest run.
func (s *FileStore) RecordLastUsed(lastOpenedPath string, mode schema.AnalysisMode) error {
	_, err := s.update(func(p *schema.Preferences) error {
		p.LastOpenedPath = lastOpenedPath
		p.AnalysisMode = mode
		return nil
	})
	return err
}

// GrantConsent records an allow decision. An empty decision means "allow".
func (s *FileStore) GrantConsent(decision, source string) (schema.ConsentState, error) {
	return s.setConsent(true, decision, "allow", GrantDecisions, source)
}

// RevokeConsent records a deny decision. An empty decision means "deny".
func (s *FileStore) RevokeConsent(decision, source string) (schema.ConsentState, error) {
	return s.setConsent(false, decision, "deny", RevokeDecisions, source)
}

func (s *FileStore) setConsent(granted bool, decision, fallback string, allowed []string, source string) (schema.ConsentState, error) {
	decision = strings.ToLower(strings.TrimSpace(decision))
	if decision == "" {
		decision = fallback
	}
	if !slices.Contains(allowed, decision) {
		return schema.ConsentState{}, fmt.Errorf("invalid consent decision %q. must be one of %s", decision, strings.Join(allowed, ", "))
	}
	if source == "" {
		source = DefaultSource
	}

	prefs, err := s.update(func(p *schema.Preferences) error {
		p.Consent = schema.ConsentState{
			Granted:   granted,
			Decision:  decision,
			Timestamp: s.now().UTC(),
			Source:    source,
		}
		return nil
	})
	if err != nil {
		return schema.ConsentState{}, err
	}
	return prefs.Consent, nil
}

// EnsureConsent returns the recorded consent, or an error wrapping
// contract.ErrConsentRequired when processing has not been allowed.
func (s *FileStore) EnsureConsent() (schema.ConsentState, error) {
	prefs, err := s.Load()
	if err != nil {
		return schema.ConsentState{}, err
	}
	if !prefs.Consent.Granted {
		return prefs.Consent, fmt.Errorf("%w: run 'folio consent grant' before processing archives", contract.ErrConsentRequired)
	}
	return prefs.Consent, nil
}

// GrantPermission allows service to receive the given data types.
func (s *FileStore) GrantPermission(service string, dataTypes []string, purpose string) (schema.Permission, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return schema.Permission{}, errors.New("service name cannot be empty")
	}

	types := normalizeTypes(dataTypes)
	perm := schema.Permission{Granted: true, DataTypes: types, Purpose: purpose, GrantedAt: s.now().UTC()}
	_, err := s.update(func(p *schema.Preferences) error {
		p.ExternalPermissions[service] = perm
		return nil
	})
	if err != nil {
		return schema.Permission{}, err
	}
	return perm, nil
}

// RevokePermission removes any grant recorded for service.
func (s *FileStore) RevokePermission(service string) error {
	_, err := s.update(func(p *schema.Preferences) error {
		delete(p.ExternalPermissions, service)
		return nil
	})
	return err
}

// EnsureExternalPermission returns an error wrapping contract.ErrPermissionDenied
// unless service holds a grant covering every requested data type.
// A grant with no data types covers all of them.
func (s *FileStore) EnsureExternalPermission(service string, dataTypes []string, purpose string) error {
	prefs, err := s.Load()
	if err != nil {
		return err
	}

	perm, ok := prefs.ExternalPermissions[service]
	if !ok || !perm.Granted {
		return fmt.Errorf("%w: %s has no permission for %s (%s); run 'folio consent grant --service %s'",
			contract.ErrPermissionDenied, service, strings.Join(dataTypes, ", "), purpose, service)
	}
	if len(perm.DataTypes) == 0 {
		return nil
	}

	var missing []string
	for _, dt := range normalizeTypes(dataTypes) {
		if !slices.Contains(perm.DataTypes, dt) {
			missing = append(missing, dt)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s is not permitted to receive %s", contract.ErrPermissionDenied, service, strings.Join(missing, ", "))
	}
	return nil
}

// normalizeTypes lowercases, trims, dedupes and sorts data type names.
func normalizeTypes(dataTypes []string) []string {
	out := make([]string, 0, len(dataTypes))
	for _, dt := range dataTypes {
		dt = strings.ToLower(strings.TrimSpace(dt))
		if dt != "" {
			out = append(out, dt)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
