package logsink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MakeRunDirs creates out/<tool>/<DD.MM.YYYY>/<tool_HH-MM-SS> for one run
// and returns the leaf directory.
func MakeRunDirs(base, tool string) (string, error) {
	now := time.Now()
	date := now.Format("02.01.2006")
	name := tool + "_" + now.Format("15-04-05")

	dir := filepath.Join(base, tool, date, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}
	return dir, nil
}

func OpenAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
