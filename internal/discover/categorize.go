package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vburojevic/logview/internal/domain"
)

// HomeDir returns the current user's home directory, or "" if unknown
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// CategoryLabel returns the display label for the directory holding path.
// A leading home directory (followed by a separator) is stripped, unless
// home is the filesystem root.
func CategoryLabel(path, home string) string {
	dir := filepath.Dir(path)
	if home == "" || filepath.Dir(home) == home {
		return dir
	}
	prefix := strings.TrimSuffix(home, string(filepath.Separator)) + string(filepath.Separator)
	return strings.TrimPrefix(dir, prefix)
}

// Categorize groups paths by category label. Categories appear in the order
// their first file was seen and files keep input order.
func Categorize(paths []string, home string) []domain.Category {
	var categories []domain.Category
	index := make(map[string]int)

	for _, p := range paths {
		label := CategoryLabel(p, home)
		file := domain.LogFile{
			Path:     p,
			Name:     filepath.Base(p),
			Category: label,
		}

		i, ok := index[label]
		if !ok {
			i = len(categories)
			index[label] = i
			categories = append(categories, domain.Category{Label: label})
		}
		categories[i].Files = append(categories[i].Files, file)
	}

	return categories
}
