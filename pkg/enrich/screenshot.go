package enrich

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/radiofrance/maestro-allure/pkg/allure"
)

// imageMIME is the fixed set of recognized screenshot extensions.
var imageMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// findLatestScreenshot returns the most recently modified image file
// under dir (recursively), or an empty path when dir is absent or holds
// no image.
func findLatestScreenshot(dir string) (string, error) {
	var latest string
	var latestModTime time.Time

	err := filepath.WalkDir(dir, func(file string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if _, ok := imageMIME[strings.ToLower(filepath.Ext(file))]; !ok {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(latestModTime) {
			latestModTime = info.ModTime()
			latest = file
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return latest, nil
}

// copyScreenshot copies the latest screenshot from outputDir into
// resultsDir as <id>-attachment<ext> and returns the Allure attachment
// referencing it, or nil when there is nothing to attach.
func copyScreenshot(outputDir, resultsDir, id string) (*allure.Attachment, error) {
	src, err := findLatestScreenshot(outputDir)
	if err != nil || src == "" {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(src))
	mimeType, ok := imageMIME[ext]
	if !ok {
		mimeType = "image/png"
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, err
	}

	name := id + "-attachment" + ext
	if err := os.WriteFile(path.Join(resultsDir, name), data, 0o644); err != nil { //nolint:gosec
		return nil, err
	}

	return &allure.Attachment{
		Name:   "Screenshot (failure)",
		Source: name,
		Type:   mimeType,
	}, nil
}
