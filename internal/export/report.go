// Package export writes analysis reports to disk as zstd-compressed JSON
// and reads them back.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/berpycasiano-dotcom/catanylizer/internal/board"
	"github.com/berpycasiano-dotcom/catanylizer/internal/score"
)

// Report is the exported artifact of one analysis run: the board it was
// run against, the parameters, any pairing warnings, and the full
// ranked intersection list.
type Report struct {
	GeneratedAt   string                    `json:"generated_at"`
	Weight        float64                   `json:"weight"`
	Size          float64                   `json:"size"`
	Board         board.Document            `json:"board"`
	Messages      []board.ValidationMessage `json:"messages,omitempty"`
	Intersections []score.Intersection      `json:"intersections"`
}

// NewReport stamps the current time onto a report.
func NewReport(tiles board.TileAssignment, weight, size float64, messages []board.ValidationMessage, ranked []score.Intersection) Report {
	return Report{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Weight:        weight,
		Size:          size,
		Board:         tiles.Document(),
		Messages:      messages,
		Intersections: ranked,
	}
}

// Write serializes and compresses the report, then writes it atomically:
// temp file in the same directory, renamed over the target.
func Write(path string, rep Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("compress report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("compress report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return writeFileAtomic(path, buf.Bytes())
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	var rep Report
	f, err := os.Open(path)
	if err != nil {
		return rep, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return rep, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(&rep); err != nil {
		return rep, fmt.Errorf("decode report %s: %w", path, err)
	}
	return rep, nil
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// never leaves a truncated report at path.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
