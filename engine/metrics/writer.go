package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// MatchRecord is one CSV row of a self-play run.
type MatchRecord struct {
	MatchID  string
	Outcome  string
	Turns    int
	Actions  int
	Retries  int
	Duration time.Duration
}

// Writer emits self-play run results under a timestamped directory.
type Writer struct {
	baseDir string
}

func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join(root, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// WriteMatches writes one row per match.
func (w *Writer) WriteMatches(records []MatchRecord) error {
	path := filepath.Join(w.baseDir, "matches.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create matches file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"match_id", "outcome", "turns", "actions", "retries", "duration_ms"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write matches header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.MatchID,
			r.Outcome,
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.Actions),
			strconv.Itoa(r.Retries),
			strconv.FormatInt(r.Duration.Milliseconds(), 10),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write match record: %w", err)
		}
	}
	return nil
}

// WriteSummary writes the aggregated counters of a run.
func (w *Writer) WriteSummary(s Snapshot) error {
	path := filepath.Join(w.baseDir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"matches", "aborted", "wins_a", "wins_b", "ties", "turns", "actions", "retries"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	row := []string{
		strconv.FormatInt(s.Matches, 10),
		strconv.FormatInt(s.Aborted, 10),
		strconv.FormatInt(s.Wins[0], 10),
		strconv.FormatInt(s.Wins[1], 10),
		strconv.FormatInt(s.Ties, 10),
		strconv.FormatInt(s.Turns, 10),
		strconv.FormatInt(s.Actions, 10),
		strconv.FormatInt(s.Retries, 10),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("failed to write summary record: %w", err)
	}
	return nil
}

// BaseDir reports where the run's files are written.
func (w *Writer) BaseDir() string { return w.baseDir }
