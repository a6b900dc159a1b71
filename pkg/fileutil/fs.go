package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts file access so game data can live on disk or be
// embedded into the binary. All lookups are case-insensitive.
type FileSystem interface {
	// Open opens the named file.
	Open(name string) (fs.File, error)
	// ReadFile reads the whole named file.
	ReadFile(name string) ([]byte, error)
	// FindFile searches dir for filename ignoring case and returns the
	// actual path.
	FindFile(dir, filename string) (string, error)
	// BasePath returns the base path the file system is rooted at.
	BasePath() string
	// IsEmbedded reports whether this is an embedded file system.
	IsEmbedded() bool
}

// RealFS provides access to the host file system rooted at a base path.
type RealFS struct {
	basePath string
}

// NewRealFS creates a FileSystem over the host file system.
func NewRealFS(basePath string) *RealFS {
	return &RealFS{basePath: basePath}
}

func (r *RealFS) Open(name string) (fs.File, error) {
	actualPath, err := r.locate(r.resolvePath(name))
	if err != nil {
		return nil, err
	}
	return os.Open(actualPath)
}

func (r *RealFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := r.locate(r.resolvePath(name))
	if err != nil {
		return nil, err
	}
	return os.ReadFile(actualPath)
}

func (r *RealFS) FindFile(dir, filename string) (string, error) {
	searchDir := dir
	if r.basePath != "" && !filepath.IsAbs(dir) {
		searchDir = filepath.Join(r.basePath, dir)
	}
	return FindFileCaseInsensitive(searchDir, filename)
}

func (r *RealFS) BasePath() string { return r.basePath }

func (r *RealFS) IsEmbedded() bool { return false }

func (r *RealFS) resolvePath(name string) string {
	cleanName := strings.TrimPrefix(strings.TrimPrefix(name, "/"), "\\")
	cleanName = filepath.FromSlash(cleanName)
	if r.basePath != "" {
		return filepath.Join(r.basePath, cleanName)
	}
	return cleanName
}

func (r *RealFS) locate(path string) (string, error) {
	// Exact path first, directory scan only as a fallback.
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return FindFileCaseInsensitive(filepath.Dir(path), filepath.Base(path))
}

// EmbedFS provides access to an embedded file system (embed.FS).
type EmbedFS struct {
	fsys     fs.FS
	basePath string
}

// NewEmbedFS creates a FileSystem over an embedded file system.
func NewEmbedFS(fsys fs.FS, basePath string) *EmbedFS {
	return &EmbedFS{fsys: fsys, basePath: basePath}
}

func (e *EmbedFS) Open(name string) (fs.File, error) {
	actualPath, err := e.locate(e.resolvePath(name))
	if err != nil {
		return nil, err
	}
	return e.fsys.Open(actualPath)
}

func (e *EmbedFS) ReadFile(name string) ([]byte, error) {
	actualPath, err := e.locate(e.resolvePath(name))
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(e.fsys, actualPath)
}

func (e *EmbedFS) FindFile(dir, filename string) (string, error) {
	searchDir := dir
	if e.basePath != "" {
		searchDir = e.basePath + "/" + dir
	}
	return FindFileCaseInsensitiveFS(e.fsys, searchDir, filename)
}

func (e *EmbedFS) BasePath() string { return e.basePath }

func (e *EmbedFS) IsEmbedded() bool { return true }

func (e *EmbedFS) resolvePath(name string) string {
	cleanName := strings.TrimPrefix(strings.TrimPrefix(name, "/"), "\\")
	cleanName = strings.ReplaceAll(cleanName, "\\", "/")
	if cleanName == "." || cleanName == "" {
		if e.basePath != "" {
			return e.basePath
		}
		return "."
	}
	if e.basePath != "" {
		return e.basePath + "/" + cleanName
	}
	return cleanName
}

func (e *EmbedFS) locate(path string) (string, error) {
	if f, err := e.fsys.Open(path); err == nil {
		f.Close()
		return path, nil
	}
	dir := strings.ReplaceAll(filepath.Dir(path), "\\", "/")
	return FindFileCaseInsensitiveFS(e.fsys, dir, filepath.Base(path))
}
