package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtension is the file name suffix that marks a log file
const DefaultExtension = ".log"

// ErrNotDirectory is returned when the scan root is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Options controls which files a scan collects
type Options struct {
	// Extension is matched case-sensitively against the end of each file name.
	Extension string
	// Exclude holds doublestar patterns matched against slash-separated paths
	// relative to the root. A matching directory is not descended into.
	Exclude []string
}

// DefaultOptions returns options that collect every *.log file
func DefaultOptions() Options {
	return Options{Extension: DefaultExtension}
}

// ValidatePatterns reports the first malformed exclude pattern
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// CheckRoot verifies that root exists and is a directory
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}
	return nil
}

// Find walks the tree under root and returns the absolute paths of regular
// files whose name ends with opts.Extension. A directory's own files come
// before anything in its subdirectories, each level in lexical order.
// Entries that cannot be read are skipped. Symlinks are not followed.
func Find(ctx context.Context, root string, opts Options) ([]string, error) {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if err := ValidatePatterns(opts.Exclude); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var files []string
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == abs {
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path != abs && excluded(abs, path, opts.Exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), opts.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, walkErr)
	}

	slices.SortStableFunc(files, filesFirst)
	return files, nil
}

// filesFirst orders paths as a top-down walk that lists a directory's files
// before descending into its subdirectories.
func filesFirst(a, b string) int {
	as := strings.Split(a, string(filepath.Separator))
	bs := strings.Split(b, string(filepath.Separator))
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		aFile, bFile := i == len(as)-1, i == len(bs)-1
		switch {
		case aFile && !bFile:
			return -1
		case bFile && !aFile:
			return 1
		}
		return strings.Compare(as[i], bs[i])
	}
	return len(as) - len(bs)
}

func excluded(root, path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range patterns {
		// Patterns were validated up front, so the error is always nil.
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
