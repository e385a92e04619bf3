package lint

import (
	"os"
	"path/filepath"
)

// FileInfo is a candidate file found under the base directory.
type FileInfo struct {
	Path    string // relative, forward-slash path from the base directory
	AbsPath string // path on disk
	Size    int64
}

// CollectFiles walks root and returns every regular file that no global
// ignore excludes. Ignored directories are pruned. Paths are reported
// relative to the resolver's base directory when one is set, otherwise
// relative to root.
func (r *Resolver) CollectFiles(root string) ([]FileInfo, error) {
	base := r.baseDir
	if base == "" {
		base = root
	} else if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}
		root = abs
	}

	var files []FileInfo
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relOS, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel := normalizeSlashPath(relOS)

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if rel != "." && r.globalIgnores.excludes(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip non-regular files
		if !d.Type().IsRegular() {
			return nil
		}
		if r.globalIgnores.excludes(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Path:    rel,
			AbsPath: path,
			Size:    info.Size(),
		})
		return nil
	})

	return files, err
}

// Paths returns the relative paths of files.
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
