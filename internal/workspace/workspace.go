package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Workspace owns the intermediate files of one request. Every path handed
// out or registered is removed by Cleanup regardless of how the request
// ended; the final output never lives inside a workspace.
type Workspace struct {
	ID  string
	dir string

	logger zerolog.Logger

	mu    sync.Mutex
	files []string
}

// New creates a request-scoped directory under tempDir.
func New(logger zerolog.Logger, tempDir string) (*Workspace, error) {
	id := uuid.NewString()
	dir := filepath.Join(tempDir, "overcut-"+id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace dir: %w", err)
	}

	return &Workspace{
		ID:     id,
		dir:    dir,
		logger: logger.With().Str("component", "workspace").Str("workspace", id).Logger(),
	}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path returns a workspace-local path for name and registers it for
// cleanup.
func (w *Workspace) Path(name string) string {
	path := filepath.Join(w.dir, name)
	w.Register(path)
	return path
}

// Register marks a file for removal at cleanup.
func (w *Workspace) Register(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.files {
		if existing == path {
			return
		}
	}
	w.files = append(w.files, path)
}

// Files returns the currently registered paths.
func (w *Workspace) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.files))
	copy(out, w.files)
	return out
}

// Cleanup removes all registered files and the workspace directory.
// Removal is best effort: failures are logged, never escalated.
func (w *Workspace) Cleanup() {
	w.mu.Lock()
	files := w.files
	w.files = nil
	w.mu.Unlock()

	for _, path := range files {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			w.logger.Warn().Err(err).Str("path", path).Msg("failed to remove temp file")
		}
	}

	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn().Err(err).Str("dir", w.dir).Msg("failed to remove workspace dir")
	}

	w.logger.Debug().Int("files", len(files)).Msg("workspace cleaned up")
}
