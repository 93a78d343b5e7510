package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

// CSV appends expense rows to a local file. A header row is written when the
// file is empty, so reopening an existing log never duplicates it.
type CSV struct {
	mu   sync.Mutex
	file *os.File
}

// NewCSV opens or creates the expense log at path
func NewCSV(path string) (*CSV, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening csv file: %w", err)
	}

	c := &CSV{file: file}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("statting csv file: %w", err)
	}
	if info.Size() == 0 {
		if err := c.writeRow(Header); err != nil {
			file.Close()
			return nil, fmt.Errorf("writing csv header: %w", err)
		}
	}

	return c, nil
}

// AppendRow appends one row to the file
func (c *CSV) AppendRow(ctx context.Context, values []string) error {
	if err := c.writeRow(values); err != nil {
		return fmt.Errorf("appending csv row: %w", err)
	}
	return nil
}

func (c *CSV) writeRow(values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := csv.NewWriter(c.file)
	if err := w.Write(values); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Close closes the underlying file
func (c *CSV) Close() error {
	return c.file.Close()
}
