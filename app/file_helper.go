package app

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/ludo-technologies/domscan/internal/constants"
	"github.com/ludo-technologies/domscan/internal/fetcher"
)

// FileHelper provides file operation utilities
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectDocuments collects document files from paths. Include and exclude
// patterns use gitignore syntax and are matched against the path relative to
// the directory being walked. Explicit file arguments only need a document
// extension and must not be excluded.
func (h *FileHelper) CollectDocuments(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var include *ignore.GitIgnore
	if len(includePatterns) > 0 {
		include = ignore.CompileIgnoreLines(includePatterns...)
	}
	exclude := ignore.CompileIgnoreLines(excludePatterns...)

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isDocumentFile(path) && !exclude.MatchesPath(filepath.ToSlash(path)) {
				add(path)
			}
			continue
		}

		root := path
		err = filepath.WalkDir(root, func(filePath string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			rel, relErr := filepath.Rel(root, filePath)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if !recursive || exclude.MatchesPath(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if exclude.MatchesPath(rel) {
				return nil
			}
			if include != nil {
				if !include.MatchesPath(rel) {
					return nil
				}
			} else if !h.isDocumentFile(filePath) {
				return nil
			}

			add(filePath)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsDocumentFile checks if a path has a supported document extension
func (h *FileHelper) IsDocumentFile(path string) bool {
	return h.isDocumentFile(path)
}

func (h *FileHelper) isDocumentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(constants.DocumentExtensions, ext)
}

// ResolveSources expands the given arguments into analyzable sources. URLs
// are passed through untouched and keep their position ahead of files.
func ResolveSources(
	fileHelper *FileHelper,
	sources []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	var urls, paths []string
	for _, s := range sources {
		if fetcher.IsURL(s) {
			urls = append(urls, s)
		} else {
			paths = append(paths, s)
		}
	}
	if len(paths) == 0 {
		return urls, nil
	}

	files, err := fileHelper.CollectDocuments(paths, recursive, includePatterns, excludePatterns)
	if err != nil {
		return nil, err
	}
	return append(urls, files...), nil
}
