package fsops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keiko/fman/internal/config"
)

// IsSafePath reports whether a mutating operation may touch the path.
// Anything under a protected prefix (system directories) is refused.
func IsSafePath(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	for _, protected := range config.ProtectedPaths {
		if strings.HasPrefix(abs, protected) {
			return false
		}
	}
	return true
}

// ValidateDir checks that path is an existing, safe directory. Called
// before any mutation; a failure short-circuits the whole operation.
func ValidateDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	if !IsSafePath(path) {
		return fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}
	return nil
}
