// Package testutil holds helpers for tests only.
package testutil

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// LoadDotEnv loads variables from a ".env" file if present, walking up
// parent directories from the working directory. Existing environment
// variables are not overridden. Intended for the live-API tests.
func LoadDotEnv() {
	loadOnce.Do(func() {
		path, ok := findUpwards(".env")
		if !ok {
			return
		}
		_ = godotenv.Load(path)
	})
}

func findUpwards(name string) (string, bool) {
	wd, err := os.Getwd()
	if err != nil {
		return "", false
	}

	dir := wd
	for {
		candidate := filepath.Join(dir, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
