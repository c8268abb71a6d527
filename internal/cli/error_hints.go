package cli

import (
	"errors"
	"io/fs"

	"github.com/vburojevic/logview/internal/discover"
)

const hintRootRequired = "Pass --path <dir>, set LOGVIEW_ROOT, or add `root:` to ~/.logview.yaml"

func hintForRoot(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, discover.ErrNotDirectory):
		return "--path must name a directory; use `logview analyze <file>` for a single file"
	case errors.Is(err, fs.ErrNotExist):
		return "Check the path for typos; it is resolved relative to the working directory"
	case errors.Is(err, fs.ErrPermission):
		return "The scan root is not readable by the current user"
	}
	return ""
}

func hintForWrite(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return "The output directory must already exist; choose another with --output"
	case errors.Is(err, fs.ErrPermission):
		return "Choose a writable location with --output"
	}
	return ""
}
