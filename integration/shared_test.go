//go:build basic || database

// Package integration contains end-to-end tests that drive the folio binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database backends: go test -tags database ./integration
package integration

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	// sharedFolioPath holds the path to a shared folio binary built once for all tests.
	sharedFolioPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getFolioBinary returns the path to the folio binary, building it once if needed.
func getFolioBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "folio-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		folioPath := filepath.Join(tempDir, "folio")
		buildCmd := exec.Command("go", "build", "-o", folioPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build folio: %v\n%s", err, out))
		}

		sharedFolioPath = folioPath
	})

	return sharedFolioPath
}

// folioEnv isolates a test run: preferences and the default SQLite store live in dir.
func folioEnv(dir string, extra ...string) []string {
	env := append(os.Environ(),
		"HOME="+dir,
		"FOLIO_PREFS_PATH="+filepath.Join(dir, "prefs.yaml"),
		"FOLIO_COLOR=no",
	)
	return append(env, extra...)
}

// runFolio runs the binary and returns stdout. Failures are logged with combined output.
func runFolio(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getFolioBinary(), args...)
	cmd.Env = env
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
	}
	return stdout.String(), err
}

// fixtureEntry is one file inside a generated archive.
type fixtureEntry struct {
	name     string
	body     string
	modified time.Time
}

// writeFixtureArchive writes a small Python/Django project with a git log to dir/name.
func writeFixtureArchive(t *testing.T, dir, name string) string {
	t.Helper()
	base := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	entries := []fixtureEntry{
		{name: "shop/requirements.txt", body: "django==4.2\nrequests\n", modified: base},
		{name: "shop/app/views.py", body: "def index(request):\n    return None\n", modified: base.AddDate(0, 0, 1)},
		{name: "shop/Dockerfile", body: "FROM python:3.12\n", modified: base.AddDate(0, 1, 0)},
		{name: "shop/README.md", body: "# Shop\n", modified: base.AddDate(0, 1, 2)},
		{name: "shop/.git/logs/HEAD", body: "0000 1111 Alice <alice@example.com> 1709546400 +0000\tcommit (initial): start\n" +
			"1111 2222 Bob <bob@example.com> 1709632800 +0000\tcommit: views\n" +
			"2222 3333 Alice <alice@example.com> 1712224800 +0000\tcommit: docker\n", modified: base.AddDate(0, 1, 2)},
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, Modified: e.modified})
		require.NoError(t, err)
		_, err = fw.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}
