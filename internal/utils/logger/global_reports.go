package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type StringListReport struct {
	Title string
	Items []string
}

var (
	GlobalStringListReport StringListReport
	ReportPath             = "reports"
	reportMu               sync.Mutex
)

func init() {
	GlobalStringListReport = StringListReport{
		Title: "ResolvedArtifacts",
		Items: []string{},
	}
}

// AddFetched records a resolved or downloaded URL in the global report.
func AddFetched(item string) {
	reportMu.Lock()
	defer reportMu.Unlock()
	GlobalStringListReport.Items = append(GlobalStringListReport.Items, item)
}

// WriteListFetchedToFile appends the GlobalStringListReport to
// ReportPath/fetchurl-<title>.txt and clears the in-memory items.
// It returns the report path.
func WriteListFetchedToFile() (string, error) {
	reportMu.Lock()
	defer reportMu.Unlock()

	if err := os.MkdirAll(ReportPath, 0755); err != nil {
		return "", fmt.Errorf("creating base path: %w", err)
	}

	title := GlobalStringListReport.Title
	if title == "" {
		title = "untitled"
	}
	// Replace spaces and special characters with underscores
	safeTitle := ""
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			safeTitle += string(r)
		} else {
			safeTitle += "_"
		}
	}

	reportFullPath := filepath.Join(ReportPath, fmt.Sprintf("fetchurl-%s.txt", safeTitle))

	f, err := os.OpenFile(reportFullPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	for _, item := range GlobalStringListReport.Items {
		if _, err := fmt.Fprintln(f, item); err != nil {
			return "", fmt.Errorf("writing to file: %w", err)
		}
	}

	GlobalStringListReport.Items = []string{}
	if _, err := fmt.Fprintln(f); err != nil {
		return "", fmt.Errorf("writing new line to file: %w", err)
	}

	return reportFullPath, nil
}
