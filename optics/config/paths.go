package config

import (
	"os"
	"path/filepath"
)

// PathResolver resolves the mesh and placement feed paths relative to the config file
type PathResolver struct {
	baseDir string
}

func NewPathResolver(baseDir string) *PathResolver {
	return &PathResolver{baseDir: baseDir}
}

// ResolvePath leaves absolute paths alone and joins relative ones onto the base directory
func (pr *PathResolver) ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(pr.baseDir, path)
}

// FileExists checks if a file exists and is readable
func (pr *PathResolver) FileExists(path string) bool {
	f, err := os.Open(pr.ResolvePath(path))
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// validateFile reports a missing input file. Empty paths are optional inputs and pass.
func validateFile(field, path string) []ValidationError {
	if path == "" {
		return nil
	}
	if !NewPathResolver(".").FileExists(path) {
		return []ValidationError{{
			Field:   field,
			Message: "file does not exist or is not readable",
		}}
	}
	return nil
}
