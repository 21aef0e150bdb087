package gen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/protoval/schema"
)

// Writer generates the files of a schema in parallel, formats them with
// goimports and writes them to the target directory. With the manifest
// enabled it skips files whose content did not change and removes files of
// messages that are gone from the schema.
type Writer struct {
	cfg *Config
	log *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	FilesSkipped   int
	FilesRemoved   int
	TotalBytes     int64
	GenerateTime   int64 // nanoseconds
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger of the writer. Defaults to slog.Default().
func WithLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWriter creates a new writer for the given configuration.
func NewWriter(cfg *Config, opts ...WriterOption) *Writer {
	w := &Writer{
		cfg:     cfg,
		log:     slog.Default(),
		metrics: &WriterMetrics{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Metrics returns a snapshot of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// Write generates and writes every message of s. Generation failures of
// single messages do not stop the others; they are joined into the
// returned error, and the files previously generated for those messages
// are left in place.
func (w *Writer) Write(ctx context.Context, s *schema.Schema) error {
	if w.cfg == nil || w.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	before := w.Metrics()
	start := time.Now()
	res, genErr := GenerateSchema(ctx, s, w.cfg)
	if res == nil {
		return genErr
	}
	w.mu.Lock()
	w.metrics.GenerateTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()

	// Ensure output directory exists
	if err := os.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	manifestPath := filepath.Join(w.cfg.Target, ManifestFile)
	prev := NewManifest(w.cfg.Package)
	if w.cfg.Manifest {
		m, err := ReadManifest(manifestPath)
		switch {
		case errors.Is(err, ErrCorruptManifest):
			// Regenerate everything and overwrite it.
			w.log.Warn("protoval: ignoring unreadable manifest", "file", manifestPath, "error", err)
		case err != nil:
			return err
		default:
			prev = m
		}
	}
	next := NewManifest(w.cfg.Package)

	workers := w.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	var nextMu sync.Mutex
	for _, f := range res.Files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			hash, err := w.writeFile(f, prev)
			if err != nil {
				return err
			}
			nextMu.Lock()
			next.Files[f.Name] = hash
			nextMu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.Join(genErr, err)
	}
	if !w.cfg.Manifest {
		w.log.Info("protoval: generation done", "target", w.cfg.Target, "files", len(res.Files), "failed", len(res.Failed))
		return genErr
	}

	// Keep the entries of failed messages so their files survive until
	// they generate again.
	for _, name := range res.Failed {
		if msg, ok := s.Message(name); ok {
			if h, ok := prev.Files[Filename(msg)]; ok {
				next.Files[Filename(msg)] = h
			}
		}
	}
	if err := w.removeStale(prev, next); err != nil {
		return errors.Join(genErr, err)
	}
	if err := next.Save(manifestPath); err != nil {
		return errors.Join(genErr, err)
	}
	m := w.Metrics()
	w.log.Info("protoval: generation done",
		"target", w.cfg.Target,
		"written", m.FilesGenerated-before.FilesGenerated,
		"skipped", m.FilesSkipped-before.FilesSkipped,
		"removed", m.FilesRemoved-before.FilesRemoved,
		"failed", len(res.Failed),
	)
	return genErr
}

// writeFile formats and writes a single file, unless the manifest shows it
// is already up to date. It returns the hash of the written content.
func (w *Writer) writeFile(f *File, prev *Manifest) (string, error) {
	fullPath := filepath.Join(w.cfg.Target, f.Name)
	content := f.Content

	// Format using goimports
	if w.cfg.Format {
		start := time.Now()
		formatted, err := imports.Process(fullPath, content, nil)
		if err != nil {
			// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
			debugPath := fullPath + ".error"
			_ = os.WriteFile(debugPath, content, 0o644)
			return "", &GenerationError{
				Type:    f.Message,
				File:    f.Name,
				Message: fmt.Sprintf("format (unformatted written to %s)", debugPath),
				Cause:   err,
			}
		}
		content = formatted
		w.mu.Lock()
		w.metrics.FormatTime += time.Since(start).Nanoseconds()
		w.mu.Unlock()
	}

	hash := contentHash(content)
	if w.cfg.Manifest && prev.Unchanged(f.Name, hash) && sameContent(fullPath, hash) {
		w.log.Debug("protoval: file unchanged", "file", f.Name)
		w.mu.Lock()
		w.metrics.FilesSkipped++
		w.mu.Unlock()
		return hash, nil
	}

	start := time.Now()
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Name, err)
	}
	w.log.Debug("protoval: file written", "file", f.Name, "message", f.Message, "bytes", len(content))

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(content))
	w.metrics.WriteTime += time.Since(start).Nanoseconds()
	w.mu.Unlock()
	return hash, nil
}

// removeStale deletes the files recorded in prev that are not part of next.
func (w *Writer) removeStale(prev, next *Manifest) error {
	for _, name := range prev.Names() {
		if _, ok := next.Files[name]; ok {
			continue
		}
		// Only remove plain file names this writer could have produced.
		if name != filepath.Base(name) || filepath.Ext(name) != ".go" {
			continue
		}
		err := os.Remove(filepath.Join(w.cfg.Target, name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", name, err)
		}
		w.log.Debug("protoval: stale file removed", "file", name)
		w.mu.Lock()
		w.metrics.FilesRemoved++
		w.mu.Unlock()
	}
	return nil
}

// sameContent reports if the file at path exists and hashes to hash.
func sameContent(path, hash string) bool {
	b, err := os.ReadFile(path)
	return err == nil && contentHash(b) == hash
}
