package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vburojevic/logview/internal/domain"
)

// DefaultErrorMarker is the substring that marks a line as an error
const DefaultErrorMarker = "ERROR"

// AnalyzeErrorPrefix starts the error text of a failed analysis
const AnalyzeErrorPrefix = "Failed to analyze log: "

// Analyzer produces a coarse event tally for a log file
type Analyzer struct {
	marker string
}

// NewAnalyzer creates an analyzer that counts lines containing ERROR
func NewAnalyzer() *Analyzer {
	return &Analyzer{marker: DefaultErrorMarker}
}

// AnalyzeFile scans the file at path once. Any failure turns the whole result
// into an error result; partial counts are never returned.
func (a *Analyzer) AnalyzeFile(path string) domain.AnalysisResult {
	file, err := os.Open(path)
	if err != nil {
		return failed(err)
	}
	defer file.Close()

	result, err := a.Analyze(file)
	if err != nil {
		return failed(err)
	}
	return result
}

// Analyze tallies lines read from r.
//
// A line counts as an error when it contains the marker anywhere
// (case-sensitive). Independently, its first whitespace-delimited token is
// tallied in EventCounts. Blank lines carry no token and are skipped.
func (a *Analyzer) Analyze(r io.Reader) (domain.AnalysisResult, error) {
	counts := domain.NewEventCounts()
	errorCount := 0

	reader := bufio.NewReader(r)
	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			lineNum++
			if !utf8.ValidString(line) {
				return domain.AnalysisResult{}, fmt.Errorf("invalid UTF-8 on line %d", lineNum)
			}
			if strings.Contains(line, a.marker) {
				errorCount++
			}
			if token := firstToken(line); token != "" {
				counts.Add(token)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.AnalysisResult{}, err
		}
	}

	return domain.AnalysisResult{
		TotalLines:  errorCount + counts.Sum(),
		ErrorCount:  errorCount,
		EventCounts: counts,
	}, nil
}

func firstToken(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if end := strings.IndexFunc(trimmed, unicode.IsSpace); end >= 0 {
		return trimmed[:end]
	}
	return trimmed
}

func failed(err error) domain.AnalysisResult {
	return domain.AnalysisResult{Error: AnalyzeErrorPrefix + err.Error()}
}
