// Package workdir resolves the directory that holds .tabsync/, supporting a
// redirect through a .tabsync-root file.
package workdir

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDir = ".tabsync"
	rootFile = ".tabsync-root"
)

// ResolveBaseDir walks up from start to the nearest directory holding a
// .tabsync directory or a .tabsync-root file. A .tabsync-root file names
// the directory to use instead, relative to the file's own directory. With
// no marker anywhere above, start is returned unchanged.
func ResolveBaseDir(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if target, ok := readRootFile(dir); ok {
			return target
		}
		if fi, err := os.Stat(filepath.Join(dir, stateDir)); err == nil && fi.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

func readRootFile(dir string) (string, bool) {
	content, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(content))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}
