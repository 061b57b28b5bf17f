package main

import (
	"os"
	"path/filepath"
	"testing"
)

// sampleRun is a run with one passing control, a failing control with a
// single result and a control with two failed results.
const sampleRun = `{
  "version": "5.22.3",
  "platform": {"name": "debian", "release": "12"},
  "profiles": [
    {
      "name": "linux-baseline",
      "title": "Linux Baseline",
      "version": "2.9.0",
      "controls": [
        {
          "id": "os-01",
          "title": "Trusted hosts login",
          "impact": 1.0,
          "results": [
            {"status": "passed", "code_desc": "File /etc/hosts.equiv should not exist", "run_time": 0.01}
          ]
        },
        {
          "id": "os-02",
          "title": "Check owner and permissions for /etc/shadow",
          "impact": 0.5,
          "results": [
            {"status": "failed", "code_desc": "File /etc/shadow should be owned by root", "message": "expected owned by root"}
          ]
        },
        {
          "id": "os-03",
          "title": "Dot in PATH variable",
          "impact": 0.3,
          "results": [
            {"status": "failed", "code_desc": "Environment variable PATH split should not include \"\"", "message": "expected not to include \"\""},
            {"status": "failed", "code_desc": "Environment variable PATH split should not include \".\"", "message": "expected not to include \".\""}
          ]
        }
      ]
    }
  ],
  "statistics": {"duration": 0.25}
}`

// writeFile writes content to name inside a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
