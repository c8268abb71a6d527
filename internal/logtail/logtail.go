package logtail

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultLines is the number of trailing lines kept per file
const DefaultLines = 200

// ErrorPrefix starts the display text returned when a file cannot be read
const ErrorPrefix = "Error reading file: "

// Read returns at most maxLines from the end of the file at path, with line
// terminators preserved. The whole file is read; content that is not valid
// UTF-8 is decoded as ISO-8859-1, which accepts any byte sequence.
//
// On failure the returned text is still displayable: ErrorPrefix followed by
// the cause, which is also returned as err.
func Read(path string, maxLines int) (string, error) {
	text, err := readTail(path, maxLines)
	if err != nil {
		return ErrorPrefix + err.Error(), err
	}
	return text, nil
}

func readTail(path string, maxLines int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := decode(data)
	if err != nil {
		return "", err
	}
	return lastLines(text, maxLines), nil
}

func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(out), nil
}

// lastLines returns the suffix of text holding its last n lines. A final
// line without a trailing newline still counts as a line.
func lastLines(text string, n int) string {
	if n <= 0 || text == "" {
		return ""
	}

	i := len(text)
	if text[i-1] == '\n' {
		i--
	}
	seen := 0
	for ; i > 0; i-- {
		if text[i-1] == '\n' {
			seen++
			if seen == n {
				return text[i:]
			}
		}
	}
	return text
}
