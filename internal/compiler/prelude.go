package compiler

import (
	"fmt"
	"os"
	"path/filepath"
)

// preludeProbePaths lists the locations searched for the standard
// library prelude, in order.
func preludeProbePaths() []string {
	paths := make([]string, 0, 4)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".colang-libs", "prelude.co"))
	}
	paths = append(paths,
		"/usr/local/lib/colang/prelude.co",
		"/usr/lib/colang/prelude.co",
		"/lib/colang/prelude.co",
	)
	return paths
}

// FindPrelude locates prelude.co by probing the standard paths.
func FindPrelude() (string, error) {
	for _, path := range preludeProbePaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("prelude.co not found; searched %v", preludeProbePaths())
}
