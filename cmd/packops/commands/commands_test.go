package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyConfig = `backend: dummy
operations:
  - install:
      - vim
      - git
`

const onlineStorage = `isOnlineInstall: true
hasInternet: true
packageOperations:
  - try_remove:
      - nano
`

// testEnv points every packops directory at a temporary location and
// returns that root.
func testEnv(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("PACKOPS_CONFIG_DIR", filepath.Join(root, "config"))
	t.Setenv("PACKOPS_DATA_DIR", filepath.Join(root, "data"))
	t.Setenv("PACKOPS_STATE_DIR", filepath.Join(root, "state"))
	t.Setenv("PACKOPS_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("PACKOPS_LOG_FILE", filepath.Join(root, "packops.log"))
	return root
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBackends(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "backends")
	require.NoError(t, err)
	for _, name := range []string{"pacman-wrapper", "pacman", "apt", "dummy"} {
		assert.Contains(t, out, name)
	}
}

func TestGenConfig(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "genconfig")
	require.NoError(t, err)

	var sample struct {
		Backend    string                   `toml:"backend"`
		Operations []map[string]interface{} `toml:"operations"`
	}
	require.NoError(t, toml.Unmarshal([]byte(out), &sample))
	assert.Equal(t, "pacman-wrapper", sample.Backend)
	assert.NotEmpty(t, sample.Operations)
}

func TestCount_ConfiguredAndStored(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)
	store := writeFile(t, dir, "storage.yaml", onlineStorage)

	out, err := execute(t, "count", "--config", cfg, "--storage", store)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)
}

func TestCount_UsesDefaultConfigFile(t *testing.T) {
	dir := testEnv(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	writeFile(t, filepath.Join(dir, "config"), "packops.toml", "backend = \"dummy\"\n\n[[operations]]\ninstall = [\"vim\"]\n")

	out, err := execute(t, "count")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestCount_MissingBackend(t *testing.T) {
	testEnv(t)
	_, err := execute(t, "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend is required")
}

func TestRun_DummyBackendRecordsHistory(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)
	store := writeFile(t, dir, "storage.yaml", onlineStorage)

	out, err := execute(t, "run", "--dry-run", "--progress", "none", "--config", cfg, "--storage", store)
	require.NoError(t, err)
	assert.Contains(t, out, "3 of 3 package units processed")
	assert.Contains(t, out, "DRY RUN MODE")

	out, err = execute(t, "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "vim")
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "nano")
	assert.Contains(t, out, "dummy")
}

func TestRun_NoJournal(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)
	store := writeFile(t, dir, "storage.yaml", onlineStorage)

	_, err := execute(t, "run", "--no-journal", "--progress", "log", "--config", cfg, "--storage", store)
	require.NoError(t, err)

	out, err := execute(t, "history", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistory)
}

func TestRun_OfflineSkips(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)

	out, err := execute(t, "run", "--progress", "none", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No package operations to process")
}

func TestRun_OnlineFlagOverridesStorage(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)

	out, err := execute(t, "run", "--online", "--progress", "none", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 package units processed")
}

func TestRun_LocaleFlag(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", "backend: dummy\noperations:\n  - install:\n      - firefox-i18n-$LOCALE\n      - vim\n")

	out, err := execute(t, "run", "--online", "--progress", "none", "--no-journal", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 package units processed")

	out, err = execute(t, "run", "--online", "--locale", "de", "--progress", "none", "--no-journal", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 package units processed")
}

func TestRun_BadBackend(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", "backend: zypper\n")

	_, err := execute(t, "run", "--online", "--progress", "none", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad backend")
	assert.Contains(t, err.Error(), `backend="zypper"`)
}

func TestRun_BadProgressMode(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", dummyConfig)

	_, err := execute(t, "run", "--progress", "fancy", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fancy")
}

func TestKeyring_DryRun(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "keyring", "--dry-run", "--internet", "--online")
	require.NoError(t, err)
	assert.Contains(t, out, "Keyring initialised")
}

func TestTopics(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "operations")
	assert.Contains(t, out, "--dry-run")

	out, err = execute(t, "topics", "locale")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCALE")

	_, err = execute(t, "topics", "nope")
	assert.Error(t, err)
}

func TestHelpTopic(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "help", "backends")
	require.NoError(t, err)
	assert.Contains(t, out, "pacman-wrapper")
}

func TestMan(t *testing.T) {
	testEnv(t)
	dir := filepath.Join(t.TempDir(), "man")
	_, err := execute(t, "man", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "packops-run.1"))
	assert.NoError(t, err)
}

func TestCompletion(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "packops")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestNoCommand(t *testing.T) {
	testEnv(t)
	_, err := execute(t)
	assert.Error(t, err)
}

func TestRun_BadBackendIsFailureError(t *testing.T) {
	dir := testEnv(t)
	cfg := writeFile(t, dir, "packops.yaml", "backend: zypper\n")

	_, err := execute(t, "run", "--online", "--progress", "none", "--config", cfg)
	var failure *FailureError
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "Bad backend", failure.Title)
}
