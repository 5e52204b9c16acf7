package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"ecom-intel/models"
)

// CSVWriter dumps raw extracted review records to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"source_url", "rating", "reviewer_name", "review_date", "review_text", "extracted_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRaw appends the given records to the CSV file. A rating of zero
// means the record had no rating marker, so the column is left empty.
func (c *CSVWriter) WriteRaw(records []*models.ReviewRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		rating := ""
		if r.Rating > 0 {
			rating = strconv.FormatFloat(r.Rating, 'f', 1, 64)
		}
		row := []string{
			r.SourceURL,
			rating,
			r.ReviewerName,
			r.ReviewDate,
			r.Text,
			r.ExtractedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
