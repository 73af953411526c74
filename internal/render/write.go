package render

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// WriteFile writes rendered configuration atomically and durably: the
// data is fsynced to a temp file and renamed over the target, so a crash
// never leaves a half-written engine config behind.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck // no-op after a successful replace

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace %s: %w", path, err)
	}
	return nil
}
