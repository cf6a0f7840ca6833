package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Czaki/napari-release-tools/internal/domain/models"
	"github.com/Czaki/napari-release-tools/internal/regex"
)

// ScanPriorContributors collects every @login mention from previously
// generated release files in dir, skipping excludeFile (the file about to
// be written or rewritten). It returns the logins and the number of prior
// files found; zero prior files means there is nothing to compare against
// and the New Contributors section must stay out of the document.
func ScanPriorContributors(dir, excludeFile string) (models.LoginSet, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading target directory: %w", err)
	}

	old := models.NewLoginSet()
	found := 0
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == excludeFile || !regex.ReleaseFile.MatchString(entry.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, 0, fmt.Errorf("error reading prior release notes %s: %w", entry.Name(), err)
		}

		for _, match := range regex.UserMention.FindAllStringSubmatch(string(data), -1) {
			old.Add(match[1])
		}
		found++
	}

	return old, found, nil
}
