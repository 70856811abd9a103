// Package worklog computes efficiency figures over shop-floor work-hour
// entries: actual against standard hours, overtime alerts and per-operator,
// per-process and per-day totals.
package worklog

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	// OvertimeThreshold is the efficiency ratio above which an entry is
	// flagged.
	OvertimeThreshold = 120.0
	// SevereThreshold marks an overtime entry as severe.
	SevereThreshold = 150.0
)

var ErrInvalidInterval = errors.New("end time must be after start time")

type Entry struct {
	OrderNo       string    `json:"order_no"`
	ProcessName   string    `json:"process_name"`
	Operator      string    `json:"operator"`
	Start         time.Time `json:"start_time"`
	End           time.Time `json:"end_time"`
	ActualHours   float64   `json:"actual_hours"`
	StandardHours float64   `json:"standard_hours"`
	Notes         string    `json:"notes,omitempty"`
}

// NewEntry fills ActualHours from the interval, rounded to two decimals.
func NewEntry(orderNo, process, operator string, start, end time.Time, standard float64, notes string) (Entry, error) {
	if !end.After(start) {
		return Entry{}, ErrInvalidInterval
	}
	return Entry{
		OrderNo:       strings.TrimSpace(orderNo),
		ProcessName:   strings.TrimSpace(process),
		Operator:      strings.TrimSpace(operator),
		Start:         start,
		End:           end,
		ActualHours:   round(end.Sub(start).Hours(), 2),
		StandardHours: standard,
		Notes:         notes,
	}, nil
}

// Efficiency is actual/standard as a percentage with one decimal. ok is
// false when there is no positive standard to compare against.
func (e Entry) Efficiency() (pct float64, ok bool) {
	if e.StandardHours <= 0 {
		return 0, false
	}
	return round(e.ActualHours/e.StandardHours*100, 1), true
}

func (e Entry) Overtime() bool {
	p, ok := e.Efficiency()
	return ok && p > OvertimeThreshold
}

func (e Entry) Severe() bool {
	p, ok := e.Efficiency()
	return ok && p > SevereThreshold
}

// Filter narrows a summary. Zero values match everything; From and To are
// compared by calendar day of Start and are inclusive.
type Filter struct {
	From     time.Time
	To       time.Time
	Operator string
	Process  string
}

func (f Filter) match(e Entry) bool {
	day := truncateDay(e.Start)
	if !f.From.IsZero() && day.Before(truncateDay(f.From)) {
		return false
	}
	if !f.To.IsZero() && day.After(truncateDay(f.To)) {
		return false
	}
	if f.Operator != "" && e.Operator != f.Operator {
		return false
	}
	if f.Process != "" && e.ProcessName != f.Process {
		return false
	}
	return true
}

type Total struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type Day struct {
	Date     string   `json:"date"`
	Actual   float64  `json:"actual_hours"`
	Standard float64  `json:"standard_hours"`
	Ratio    *float64 `json:"ratio,omitempty"`
}

type Alert struct {
	Entry      Entry   `json:"entry"`
	Efficiency float64 `json:"efficiency"`
	Severe     bool    `json:"severe"`
}

type Summary struct {
	Orders         int      `json:"orders"`
	Operators      int      `json:"operators"`
	TotalActual    float64  `json:"total_actual_hours"`
	TotalStandard  float64  `json:"total_standard_hours"`
	MeanEfficiency *float64 `json:"mean_efficiency,omitempty"`
	ByOperator     []Total  `json:"by_operator"`
	ByProcess      []Total  `json:"by_process"`
	Daily          []Day    `json:"daily"`
	Alerts         []Alert  `json:"alerts"`
}

// Summarize aggregates the entries that match f.
func Summarize(entries []Entry, f Filter) Summary {
	var s Summary
	orders := map[string]struct{}{}
	operators := map[string]struct{}{}
	byOp := map[string]float64{}
	byProc := map[string]float64{}
	days := map[string]*Day{}
	var effSum float64
	effN := 0

	for _, e := range entries {
		if !f.match(e) {
			continue
		}
		if e.OrderNo != "" {
			orders[e.OrderNo] = struct{}{}
		}
		if e.Operator != "" {
			operators[e.Operator] = struct{}{}
			byOp[e.Operator] += e.ActualHours
		}
		if e.ProcessName != "" {
			byProc[e.ProcessName] += e.ActualHours
		}
		s.TotalActual += e.ActualHours
		s.TotalStandard += e.StandardHours

		key := e.Start.Format("2006-01-02")
		d := days[key]
		if d == nil {
			d = &Day{Date: key}
			days[key] = d
		}
		d.Actual += e.ActualHours
		d.Standard += e.StandardHours

		if p, ok := e.Efficiency(); ok {
			effSum += p
			effN++
			if p > OvertimeThreshold {
				s.Alerts = append(s.Alerts, Alert{Entry: e, Efficiency: p, Severe: p > SevereThreshold})
			}
		}
	}

	s.Orders = len(orders)
	s.Operators = len(operators)
	if effN > 0 {
		m := round(effSum/float64(effN), 1)
		s.MeanEfficiency = &m
	}

	s.ByOperator = totals(byOp)
	sort.SliceStable(s.ByOperator, func(i, j int) bool { return s.ByOperator[i].Hours > s.ByOperator[j].Hours })
	s.ByProcess = totals(byProc)

	for _, d := range days {
		if d.Standard > 0 {
			r := round(d.Actual/d.Standard*100, 1)
			d.Ratio = &r
		}
		s.Daily = append(s.Daily, *d)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	sort.SliceStable(s.Alerts, func(i, j int) bool { return s.Alerts[i].Efficiency > s.Alerts[j].Efficiency })
	return s
}

// totals is sorted by name so equal-hour entries come out in a fixed order.
func totals(m map[string]float64) []Total {
	out := make([]Total, 0, len(m))
	for k, v := range m {
		out = append(out, Total{Name: k, Hours: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
