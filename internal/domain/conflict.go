package domain

import (
	"fmt"
	"strconv"
)

// ConflictResolution decides what an import does with a candidate whose date
// already exists in the store.
type ConflictResolution int

const (
	// Skip discards the candidate. It is also the fallback for unknown
	// policy names.
	Skip ConflictResolution = iota
	// Overwrite replaces the existing record in place.
	Overwrite
	// Keep adds the candidate next to the existing record, leaving two
	// records on the same date.
	Keep
)

// ParseConflictResolution maps a policy name to its variant. Any name other
// than "overwrite" or "keep" yields Skip.
func ParseConflictResolution(s string) ConflictResolution {
	switch s {
	case "overwrite":
		return Overwrite
	case "keep":
		return Keep
	case "skip":
		return Skip
	default:
		return Skip
	}
}

func (c ConflictResolution) String() string {
	switch c {
	case Overwrite:
		return "overwrite"
	case Keep:
		return "keep"
	default:
		return "skip"
	}
}

// Candidate is one import input row. Err is set when the row could not be
// turned into a record at all.
type Candidate struct {
	Record WeightRecord
	Source string
	Err    string
}

// Merge applies candidates to doc under policy and returns the new document
// along with the import tally. Conflicts are looked up against doc as given,
// never against additions staged by the same batch. doc is not modified.
func Merge(doc *Document, candidates []Candidate, policy ConflictResolution) (*Document, ImportResult) {
	out := doc.Clone()
	res := ImportResult{Errors: []string{}}
	var staged []WeightRecord

	for _, c := range candidates {
		if c.Err != "" {
			res.Failed++
			res.Errors = append(res.Errors, withSource(c.Source, c.Err))
			continue
		}
		r := c.Record
		if !ValidWeight(r.Weight) {
			res.Failed++
			res.Errors = append(res.Errors, withSource(c.Source,
				fmt.Sprintf("Invalid weight value: %s on %s", FormatWeight(r.Weight), r.Date)))
			continue
		}

		i := out.IndexOfDate(r.Date)
		if i < 0 {
			staged = append(staged, r)
			res.Success++
			continue
		}
		switch policy {
		case Overwrite:
			out.Records[i] = r
			res.Success++
		case Keep:
			staged = append(staged, r)
			res.Success++
		default:
			res.Skipped++
		}
	}

	out.Records = append(out.Records, staged...)
	SortRecords(out.Records)
	return out, res
}

// FormatWeight renders w with the fewest digits that round-trip.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func withSource(source, msg string) string {
	if source == "" {
		return msg
	}
	return source + ": " + msg
}
