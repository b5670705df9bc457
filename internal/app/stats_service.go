package app

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"weightlog/internal/domain"
)

const (
	maxStatsDays = 3660
	dateLayout   = "2006-01-02"
	recentWindow = 7

	// achievedToleranceKg is how close to the target counts as reaching it.
	achievedToleranceKg = 0.5
)

// StatsService derives read-only statistics from the stored records.
type StatsService struct {
	store *Store
	now   func() time.Time
}

// NewStatsService creates a StatsService on top of the given store.
func NewStatsService(store *Store) *StatsService {
	return &StatsService{store: store, now: time.Now}
}

// Summary describes the records within a date range.
type Summary struct {
	Unit          string   `json:"unit"`
	Current       float64  `json:"current"`
	Start         float64  `json:"start"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"change_percent"`
	Average       float64  `json:"average"`
	Min           float64  `json:"min"`
	Max           float64  `json:"max"`
	Count         int      `json:"count"`
	BMI           *float64 `json:"bmi,omitempty"`
	BMICategory   string   `json:"bmi_category,omitempty"`
}

// Progress describes the distance travelled towards the goal.
type Progress struct {
	Unit           string  `json:"unit"`
	Start          float64 `json:"start"`
	Current        float64 `json:"current"`
	Target         float64 `json:"target"`
	TargetDate     string  `json:"target_date,omitempty"`
	Percent        float64 `json:"percent"`
	Remaining      float64 `json:"remaining"`
	Achieved       bool    `json:"achieved"`
	EstimatedDays  *int    `json:"estimated_days,omitempty"`
	DaysSinceStart int     `json:"days_since_start"`
}

// TrendPoint is one record on the weight curve.
type TrendPoint struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// Summary returns statistics over the last days days (0 for all records),
// or nil when no record falls in range.
func (s *StatsService) Summary(ctx context.Context, days int, unit string) (*Summary, error) {
	if err := checkUnit(unit); err != nil {
		return nil, err
	}
	var out *Summary
	err := s.store.View(ctx, func(doc *domain.Document) error {
		recs := s.inRange(doc.Records, days)
		if len(recs) == 0 {
			return nil
		}
		out = summarize(recs, doc.Profile, unit)
		return nil
	})
	return out, err
}

func summarize(recs []domain.WeightRecord, profile *domain.UserProfile, unit string) *Summary {
	first, last := recs[0].Weight, recs[len(recs)-1].Weight
	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, r := range recs {
		sum += r.Weight
		lo = min(lo, r.Weight)
		hi = max(hi, r.Weight)
	}
	conv := func(v float64) float64 { return domain.ConvertWeight(v, domain.UnitKg, unit) }

	sm := &Summary{
		Unit:    unit,
		Current: conv(last),
		Start:   conv(first),
		Change:  conv(last - first),
		Average: conv(sum / float64(len(recs))),
		Min:     conv(lo),
		Max:     conv(hi),
		Count:   len(recs),
	}
	if first > 0 {
		sm.ChangePercent = (last - first) / first * 100
	}
	if profile != nil {
		if bmi := domain.BMI(last, profile.Height); bmi > 0 {
			sm.BMI = &bmi
			sm.BMICategory = domain.BMICategory(bmi)
		}
	}
	return sm
}

// Progress compares the records with the goal. It returns nil when there is
// no goal or no record.
func (s *StatsService) Progress(ctx context.Context, unit string) (*Progress, error) {
	if err := checkUnit(unit); err != nil {
		return nil, err
	}
	var out *Progress
	err := s.store.View(ctx, func(doc *domain.Document) error {
		if doc.Goal == nil || len(doc.Records) == 0 {
			return nil
		}
		out = s.progress(ascending(doc.Records), *doc.Goal, unit)
		return nil
	})
	return out, err
}

func (s *StatsService) progress(recs []domain.WeightRecord, goal domain.Goal, unit string) *Progress {
	start, current := recs[0].Weight, recs[len(recs)-1].Weight
	conv := func(v float64) float64 { return domain.ConvertWeight(v, domain.UnitKg, unit) }

	p := &Progress{
		Unit:       unit,
		Start:      conv(start),
		Current:    conv(current),
		Target:     conv(goal.TargetWeight),
		TargetDate: goal.TargetDate,
		Remaining:  conv(current - goal.TargetWeight),
		Achieved:   math.Abs(current-goal.TargetWeight) <= achievedToleranceKg,
	}
	if total := goal.TargetWeight - start; total != 0 {
		p.Percent = max(0, min(100, (current-start)/total*100))
	}

	if len(recs) >= 2 {
		recent := recs[max(0, len(recs)-recentWindow):]
		daily := (recent[len(recent)-1].Weight - recent[0].Weight) / recentWindow
		if daily != 0 {
			est := int(math.Ceil((goal.TargetWeight - current) / daily))
			p.EstimatedDays = &est
		}
	}

	if t, err := time.Parse(dateLayout, recs[0].Date); err == nil {
		p.DaysSinceStart = int(math.Ceil(s.now().Sub(t).Hours() / 24))
	}
	return p
}

// Trend returns the records within the last days days (0 for all), oldest
// first.
func (s *StatsService) Trend(ctx context.Context, days int, unit string) ([]TrendPoint, error) {
	if err := checkUnit(unit); err != nil {
		return nil, err
	}
	points := []TrendPoint{}
	err := s.store.View(ctx, func(doc *domain.Document) error {
		for _, r := range s.inRange(doc.Records, days) {
			points = append(points, TrendPoint{
				Date:   r.Date,
				Weight: domain.ConvertWeight(r.Weight, domain.UnitKg, unit),
			})
		}
		return nil
	})
	return points, err
}

// inRange returns the records dated on or after today minus days, oldest
// first. days <= 0 keeps everything.
func (s *StatsService) inRange(records []domain.WeightRecord, days int) []domain.WeightRecord {
	recs := ascending(records)
	if days <= 0 {
		return recs
	}
	days = min(days, maxStatsDays)
	cutoff := s.now().AddDate(0, 0, -days).Format(dateLayout)
	return slices.DeleteFunc(recs, func(r domain.WeightRecord) bool {
		return r.Date < cutoff
	})
}

func ascending(records []domain.WeightRecord) []domain.WeightRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b domain.WeightRecord) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return out
}

func checkUnit(unit string) error {
	if !domain.ValidUnit(unit) {
		return fmt.Errorf("%w %q: must be %s, %s or %s", domain.ErrInvalidUnit, unit, domain.UnitKg, domain.UnitLb, domain.UnitJin)
	}
	return nil
}
