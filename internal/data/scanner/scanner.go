package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-claude-statusline/internal/util"
)

const logExtension = ".jsonl"

// FileScanner finds usage logs laid out as <baseDir>/<project>/<session>.jsonl
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan returns the second-level .jsonl files in directory order. Unreadable
// or missing directories are skipped; the scan itself never fails.
func (s *FileScanner) Scan() []string {
	start := time.Now()
	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	projects, err := os.ReadDir(s.baseDir)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Skip directory (error): %s - %v", s.baseDir, err))
		return nil
	}

	var files []string
	dirCount := 0
	for _, project := range projects {
		projectDir := filepath.Join(s.baseDir, project.Name())
		if !isDir(project, projectDir) {
			continue
		}
		dirCount++

		entries, err := os.ReadDir(projectDir)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip directory (error): %s - %v", projectDir, err))
			continue
		}
		for _, entry := range entries {
			if !strings.HasSuffix(strings.ToLower(entry.Name()), logExtension) {
				continue
			}
			path := filepath.Join(projectDir, entry.Name())
			if isDir(entry, path) {
				continue
			}
			files = append(files, path)
		}
	}

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d project directories, found %d JSONL files",
		time.Since(start), dirCount, len(files)))
	return files
}

// isDir follows symlinks so linked project directories are scanned too
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
