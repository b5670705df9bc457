package domain

import (
	"cmp"
	"slices"
)

// NewDocument returns the empty document used when nothing is stored yet.
func NewDocument() *Document {
	return &Document{Records: []WeightRecord{}, Version: DocumentVersion}
}

// SortRecords orders records newest first by ISO date. Records sharing a
// date keep their relative order.
func SortRecords(records []WeightRecord) {
	slices.SortStableFunc(records, func(a, b WeightRecord) int {
		return cmp.Compare(b.Date, a.Date)
	})
}

// IndexOfDate returns the position of the first record dated date, or -1.
func (d *Document) IndexOfDate(date string) int {
	return slices.IndexFunc(d.Records, func(r WeightRecord) bool { return r.Date == date })
}

// Upsert replaces the first record sharing r's date, or appends r, then
// re-sorts.
func (d *Document) Upsert(r WeightRecord) {
	if i := d.IndexOfDate(r.Date); i >= 0 {
		d.Records[i] = r
	} else {
		d.Records = append(d.Records, r)
	}
	SortRecords(d.Records)
}

// DeleteByID removes every record with the given id and returns how many
// were removed.
func (d *Document) DeleteByID(id string) int {
	n := len(d.Records)
	d.Records = slices.DeleteFunc(d.Records, func(r WeightRecord) bool { return r.ID == id })
	return n - len(d.Records)
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{Version: d.Version, Records: make([]WeightRecord, len(d.Records))}
	copy(out.Records, d.Records)
	if d.Profile != nil {
		p := *d.Profile
		out.Profile = &p
	}
	if d.Goal != nil {
		g := *d.Goal
		out.Goal = &g
	}
	return out
}

// Normalize fills the zero-value gaps a decoded document may have so that it
// encodes back with an empty records array rather than null.
func (d *Document) Normalize() {
	if d.Records == nil {
		d.Records = []WeightRecord{}
	}
}
