package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is the output folder created next to the input data.
const DefaultDir = "analysis"

// ErrOutputExists indicates an output folder that is already present and
// may not be replaced.
var ErrOutputExists = errors.New("export: output folder exists")

// PrepareDir creates the output folder inside parent and returns its path.
// alt replaces DefaultDir when not empty. An existing folder is removed and
// recreated when overwrite is set, otherwise ErrOutputExists is returned.
func PrepareDir(parent, alt string, overwrite bool) (string, error) {
	name := DefaultDir
	if alt != "" {
		name = alt
	}
	dir := filepath.Join(parent, name)

	_, err := os.Stat(dir)
	switch {
	case err == nil && !overwrite:
		return "", fmt.Errorf("%w: %s (use overwrite or an alternative folder)", ErrOutputExists, dir)
	case err == nil:
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("export: remove %s: %w", dir, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("export: stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create %s: %w", dir, err)
	}
	return dir, nil
}
