package codec

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weightlog/internal/domain"
)

// CSVHeader is the first line written by EncodeRecordsCSV.
const CSVHeader = "Date,Weight,Note"

// CSVReader turns the comma-separated import format into import candidates.
// Rows from CSV carry no id or timestamp, so both are generated.
type CSVReader struct {
	NewID func() string
	Now   func() time.Time
}

// Decode parses data line by line. Malformed lines become failed candidates
// and never stop the scan.
func (c CSVReader) Decode(data []byte) []domain.Candidate {
	lines := splitLines(string(data))
	start := 0
	if len(lines) > 0 && strings.Contains(strings.ToLower(lines[0]), "date") {
		start = 1
	}

	out := make([]domain.Candidate, 0, len(lines)-start)
	for i := start; i < len(lines); i++ {
		source := fmt.Sprintf("Line %d", i+1)
		parts := strings.Split(lines[i], ",")
		if len(parts) < 2 {
			out = append(out, domain.Candidate{Source: source, Err: "Invalid format"})
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			out = append(out, domain.Candidate{Source: source, Err: "Invalid weight value"})
			continue
		}
		var note string
		if len(parts) > 2 {
			note = strings.TrimSpace(parts[2])
		}
		out = append(out, domain.Candidate{
			Source: source,
			Record: domain.WeightRecord{
				ID:        c.NewID(),
				Date:      strings.TrimSpace(parts[0]),
				Weight:    weight,
				Note:      note,
				CreatedAt: c.Now().UTC().Format(time.RFC3339Nano),
			},
		})
	}
	return out
}

// splitLines splits on '\n', drops a trailing '\r' from each line and does
// not yield an empty final line for input ending in a newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// EncodeRecordsCSV renders records with a header row. Fields are joined with
// commas as-is; notes containing commas are not quoted.
func EncodeRecordsCSV(records []domain.WeightRecord) []byte {
	var b bytes.Buffer
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, r := range records {
		b.WriteString(r.Date)
		b.WriteByte(',')
		b.WriteString(domain.FormatWeight(r.Weight))
		b.WriteByte(',')
		b.WriteString(r.Note)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
