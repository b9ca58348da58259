package logsink

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteRow appends one record to <dir>/<name>.log (or .json when asJSON).
// Strings are written as-is; anything else is JSON-marshaled.
func WriteRow(dir, name string, payload interface{}, asJSON bool) error {
	ext := ".log"
	if asJSON {
		ext = ".json"
	}
	f, err := OpenAppend(filepath.Join(dir, name+ext))
	if err != nil {
		return err
	}
	defer f.Close()

	if asJSON {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		_, err = f.Write(append(b, '\n'))
		return err
	}

	switch v := payload.(type) {
	case string:
		_, err = f.WriteString(v + "\n")
	default:
		b, _ := json.Marshal(payload)
		_, err = f.Write(append(b, '\n'))
	}
	return err
}

// WriteHint drops an operator hint file next to the run outputs. Empty hints
// write nothing.
func WriteHint(dir, hint string) error {
	if hint == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(dir, "hint.txt"), []byte(hint), 0o600)
}
