//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so no user config leaks in
	BinDir     string // the only entry on PATH; holds fake package managers
	ProjectDir string // a mock project directory
	LogFile    string // every fake tool invocation is appended here
}

// setupTestEnv creates isolated temp directories and points HOME and PATH at
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package managers are shell scripts")
	}

	env := &testEnv{
		HomeDir:    t.TempDir(),
		BinDir:     t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	env.LogFile = filepath.Join(env.HomeDir, "tool.log")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PATH", env.BinDir)
	t.Setenv("FAKE_TOOL_LOG", env.LogFile)
	t.Setenv("NPM_TOKEN", "")

	return env
}

// installFakeTool writes an executable named name into BinDir. It answers
// --version with version and logs any other invocation, then exits with
// status exit after printing stderr.
func installFakeTool(t *testing.T, env *testEnv, name, version string, exit int, stderr string) {
	t.Helper()
	script := `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "` + version + `"
  exit 0
fi
echo "${0##*/} $*" >> "$FAKE_TOOL_LOG"
`
	if stderr != "" {
		script += `echo "` + stderr + `" 1>&2
`
	}
	script += "exit " + strconv.Itoa(exit) + "\n"
	writeFile(t, filepath.Join(env.BinDir, name), script)
	if err := os.Chmod(filepath.Join(env.BinDir, name), 0755); err != nil {
		t.Fatalf("chmod %s: %v", name, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// readLog returns the logged tool invocations, one per line.
func readLog(t *testing.T, env *testEnv) []string {
	t.Helper()
	data, err := os.ReadFile(env.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading %s: %v", env.LogFile, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
