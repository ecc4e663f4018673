// Package staging owns the export output directory. It is the only component
// in the pipeline that manages the filesystem namespace: directory creation,
// collision-free filename generation, and temp-file placement for atomic
// writes.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"storeline-hq/saturn/pkg/report"
)

// timestampLayout is a filesystem-safe ISO-8601 form (colons replaced by
// hyphens, millisecond precision, always UTC).
const timestampLayout = "2006-01-02T15-04-05.000Z"

// Manager generates export filenames and guarantees the output directory
// exists. It holds no open resources and is safe for concurrent use.
type Manager struct {
	dir string
}

// NewManager creates a staging manager rooted at dir. The directory is not
// created until EnsureDirectory or NextPath is called.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the configured export directory.
func (m *Manager) Dir() string { return m.dir }

// EnsureDirectory creates the export directory if it does not exist and
// returns its absolute path. The call is idempotent.
func (m *Manager) EnsureDirectory() (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory %q: %w", m.dir, err)
	}
	abs, err := filepath.Abs(m.dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve export directory %q: %w", m.dir, err)
	}
	return abs, nil
}

// NextFilename generates a collision-free filename of the form
//
//	{kind}-export-{timestamp}-{suffix}.{extension}
//
// The timestamp gives human-sortable names; the short random suffix makes
// concurrent exports of the same kind and format safe even within one
// millisecond.
func (m *Manager) NextFilename(kind report.ReportKind, f report.OutputFormat) string {
	stamp := time.Now().UTC().Format(timestampLayout)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s-export-%s-%s.%s", kind, stamp, suffix, f.Extension())
}

// NextPath ensures the export directory exists and returns the absolute path
// for a new artifact of the given kind and format.
func (m *Manager) NextPath(kind report.ReportKind, f report.OutputFormat) (string, error) {
	dir, err := m.EnsureDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, m.NextFilename(kind, f)), nil
}

// TempPath returns the temp-file path renderers write to before atomically
// renaming to path. The temp file lives in the same directory so the rename
// never crosses filesystems.
func TempPath(path string) string {
	return path + ".tmp"
}
