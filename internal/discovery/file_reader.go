/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

// Package discovery walks filesystem roots for JSON/JSONC entity files and
// turns them into the gts.EntityReader the core store consumes. None of this
// is part of the versioned-identifier/schema-compatibility/instance-casting
// core; it is the thin collaborator spec.md calls out as external.
package discovery

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gts-labs/gtscat/gts"
)

// ExcludeList contains directory names to exclude during file scanning
var ExcludeList = []string{"node_modules", "dist", "build", ".git"}

var jsonFileExtensions = map[string]bool{
	".json":  true,
	".jsonc": true,
	".gts":   true,
}

// FileReader reads JSON entities from files and directories, implementing
// gts.EntityReader.
type FileReader struct {
	paths               []string
	cfg                 *gts.EntityConfig
	files               []string
	currentIndex        int
	currentFileEntities []*gts.JsonEntity
	currentEntityIndex  int
	initialized         bool
}

// NewFileReader creates a new file reader with the given paths
func NewFileReader(paths []string, cfg *gts.EntityConfig) *FileReader {
	if cfg == nil {
		cfg = gts.DefaultEntityConfig()
	}

	expandedPaths := make([]string, len(paths))
	for i, p := range paths {
		if strings.HasPrefix(p, "~/") {
			home, err := os.UserHomeDir()
			if err == nil {
				p = filepath.Join(home, p[2:])
			}
		}
		expandedPaths[i] = p
	}

	return &FileReader{
		paths: expandedPaths,
		cfg:   cfg,
	}
}

// NewFileReaderFromPath creates a new file reader from a single path
func NewFileReaderFromPath(path string, cfg *gts.EntityConfig) *FileReader {
	return NewFileReader([]string{path}, cfg)
}

// Paths returns the configured roots, expanded but not yet resolved.
func (r *FileReader) Paths() []string {
	return r.paths
}

// collectFiles collects all JSON/JSONC files from the specified paths, in
// deterministic (sorted) path order so discovery is reproducible across runs.
func (r *FileReader) collectFiles() {
	seen := make(map[string]bool)
	var collected []string

	for _, path := range r.paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}

		if info.IsDir() {
			err := filepath.Walk(absPath, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return nil // Skip files with errors
				}

				if info.IsDir() {
					for _, exclude := range ExcludeList {
						if info.Name() == exclude {
							return filepath.SkipDir
						}
					}
					return nil
				}

				ext := strings.ToLower(filepath.Ext(filePath))
				if jsonFileExtensions[ext] {
					realPath, err := filepath.EvalSymlinks(filePath)
					if err != nil {
						realPath = filePath
					}
					if !seen[realPath] {
						seen[realPath] = true
						collected = append(collected, realPath)
					}
				}

				return nil
			})
			if err != nil {
				continue
			}
		} else {
			ext := strings.ToLower(filepath.Ext(absPath))
			if jsonFileExtensions[ext] {
				realPath, err := filepath.EvalSymlinks(absPath)
				if err != nil {
					realPath = absPath
				}
				if !seen[realPath] {
					seen[realPath] = true
					collected = append(collected, realPath)
				}
			}
		}
	}

	sort.Strings(collected)
	r.files = collected
}

// loadJSONFile loads JSON content from a file, stripping `//` and `/* */`
// comments first when the extension is .jsonc or .gts.
func (r *FileReader) loadJSONFile(filePath string) (any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".jsonc" || ext == ".gts" {
		data = stripJSONComments(data)
	}

	var content any
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, err
	}

	return content, nil
}

// stripJSONComments removes `//` line comments and `/* ... */` block
// comments from JSONC source, leaving string literals (including escaped
// quotes within them) untouched.
func stripJSONComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false
	inLineComment := false
	inBlockComment := false

	for i := 0; i < len(src); i++ {
		c := src[i]

		if inLineComment {
			if c == '\n' {
				inLineComment = false
				out = append(out, c)
			}
			continue
		}

		if inBlockComment {
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlockComment = false
				i++
			}
			continue
		}

		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				out = append(out, src[i+1])
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}

		if c == '/' && i+1 < len(src) {
			if src[i+1] == '/' {
				inLineComment = true
				i++
				continue
			}
			if src[i+1] == '*' {
				inBlockComment = true
				i++
				continue
			}
		}

		out = append(out, c)
	}

	return out
}

// processFile processes a single JSON file and returns the entities it yields
func (r *FileReader) processFile(filePath string) []*gts.JsonEntity {
	var entities []*gts.JsonEntity

	content, err := r.loadJSONFile(filePath)
	if err != nil {
		return entities
	}

	jsonFile := &gts.JsonFile{
		Path:    filePath,
		Name:    filepath.Base(filePath),
		Content: content,
	}

	switch v := content.(type) {
	case []any:
		for idx, item := range v {
			if itemMap, ok := item.(map[string]any); ok {
				idxCopy := idx
				entity := gts.NewJsonEntityWithFile(itemMap, r.cfg, jsonFile, &idxCopy)
				if entity.GtsID != nil {
					entities = append(entities, entity)
				}
			}
		}
	case map[string]any:
		entity := gts.NewJsonEntityWithFile(v, r.cfg, jsonFile, nil)
		if entity.GtsID != nil {
			entities = append(entities, entity)
		}
	}

	return entities
}

// Next returns the next JsonEntity or nil when exhausted
func (r *FileReader) Next() *gts.JsonEntity {
	if !r.initialized {
		r.collectFiles()
		r.initialized = true
	}

	if r.currentEntityIndex < len(r.currentFileEntities) {
		entity := r.currentFileEntities[r.currentEntityIndex]
		r.currentEntityIndex++
		return entity
	}

	for r.currentIndex < len(r.files) {
		r.currentFileEntities = r.processFile(r.files[r.currentIndex])
		r.currentIndex++
		r.currentEntityIndex = 0

		if len(r.currentFileEntities) > 0 {
			entity := r.currentFileEntities[r.currentEntityIndex]
			r.currentEntityIndex++
			return entity
		}
	}

	return nil
}

// ReadByID reads a JsonEntity by its ID. FileReader has no random-access
// index, so this always returns nil; callers rely on Store caching instead.
func (r *FileReader) ReadByID(entityID string) *gts.JsonEntity {
	return nil
}

// Reset resets the iterator to start from the beginning
func (r *FileReader) Reset() {
	r.currentIndex = 0
	r.currentFileEntities = nil
	r.currentEntityIndex = 0
	r.initialized = false
}
