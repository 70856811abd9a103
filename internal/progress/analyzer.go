package progress

import (
	"sort"
	"time"
)

const defaultTopN = 3

// AnalyzerOptions replaces the dashboard's session filters. Filtering by
// division, year or status happens before Analyze is called.
type AnalyzerOptions struct {
	// Year used for short M/D dates. Zero means the current year.
	Year int
	// TopN bounds the fastest/slowest lists. Zero means 3.
	TopN int
}

func (o AnalyzerOptions) withDefaults() AnalyzerOptions {
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	if o.TopN <= 0 {
		o.TopN = defaultTopN
	}
	return o
}

// Segment is the elapsed time between two adjacent dated stages. Days is
// negative when the later stage was dated first; that value is kept as-is.
type Segment struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
	Days int   `json:"days"`
}

// Row is the per-record line of a duration report.
type Row struct {
	Index       int       `json:"index"`
	CaseNumber  string    `json:"case_no"`
	ProjectName string    `json:"project_name"`
	Client      string    `json:"client"`
	Section     string    `json:"section"`
	Category    Category  `json:"status_category"`
	Segments    []Segment `json:"segments"`
	Total       int       `json:"total_days"`
	HasTotal    bool      `json:"has_total"`
}

// PairMean is the mean duration of one stage pair across rows.
type PairMean struct {
	From  Stage   `json:"from"`
	To    Stage   `json:"to"`
	Mean  float64 `json:"mean_days"`
	Count int     `json:"count"`
}

// Report is the output of Analyze.
type Report struct {
	Rows      []Row      `json:"rows"`
	PairMeans []PairMean `json:"pair_means"`
	TotalMean *float64   `json:"total_mean,omitempty"`
	Fastest   []Row      `json:"fastest"`
	Slowest   []Row      `json:"slowest"`

	topN int
}

// Anomaly is a segment whose later stage is dated before the earlier one.
type Anomaly struct {
	CaseNumber string  `json:"case_no"`
	Segment    Segment `json:"segment"`
}

// Analyze computes per-stage durations for every record with at least one
// pair of adjacent dated stages, then the aggregates over those rows.
func Analyze(records []Record, opts AnalyzerOptions) Report {
	opts = opts.withDefaults()

	var rows []Row
	for i, r := range records {
		if row, ok := analyzeRecord(i, r, opts.Year); ok {
			rows = append(rows, row)
		}
	}
	return aggregate(rows, opts.TopN)
}

func analyzeRecord(idx int, r Record, year int) (Row, bool) {
	type dated struct {
		stage Stage
		at    time.Time
		ok    bool
	}
	seq := make([]dated, len(AnalyzedStages))
	for i, s := range AnalyzedStages {
		at, ok := ParseStageDate(r.StageDates[s], year)
		seq[i] = dated{stage: s, at: at, ok: ok}
	}

	row := Row{
		Index:       idx,
		CaseNumber:  r.CaseNumber,
		ProjectName: r.ProjectName,
		Client:      r.Client,
		Section:     r.Section,
		Category:    r.StatusCategory,
	}
	for i := 0; i+1 < len(seq); i++ {
		a, b := seq[i], seq[i+1]
		if !a.ok || !b.ok {
			continue
		}
		row.Segments = append(row.Segments, Segment{From: a.stage, To: b.stage, Days: DaysBetween(a.at, b.at)})
	}
	if len(row.Segments) == 0 {
		return Row{}, false
	}

	var first, last *time.Time
	n := 0
	for i := range seq {
		if !seq[i].ok {
			continue
		}
		if first == nil {
			first = &seq[i].at
		}
		last = &seq[i].at
		n++
	}
	if n >= 2 {
		row.Total = DaysBetween(*first, *last)
		row.HasTotal = true
	}
	return row, true
}

func aggregate(rows []Row, topN int) Report {
	rep := Report{Rows: rows, topN: topN}
	if len(rows) == 0 {
		return rep
	}

	type acc struct {
		sum, n int
	}
	sums := make(map[[2]Stage]*acc)
	for _, row := range rows {
		for _, seg := range row.Segments {
			k := [2]Stage{seg.From, seg.To}
			if sums[k] == nil {
				sums[k] = &acc{}
			}
			sums[k].sum += seg.Days
			sums[k].n++
		}
	}
	for i := 0; i+1 < len(AnalyzedStages); i++ {
		k := [2]Stage{AnalyzedStages[i], AnalyzedStages[i+1]}
		a := sums[k]
		if a == nil || a.n == 0 {
			continue
		}
		rep.PairMeans = append(rep.PairMeans, PairMean{
			From:  k[0],
			To:    k[1],
			Mean:  float64(a.sum) / float64(a.n),
			Count: a.n,
		})
	}

	var withTotal []Row
	totalSum := 0
	for _, row := range rows {
		if row.HasTotal {
			withTotal = append(withTotal, row)
			totalSum += row.Total
		}
	}
	if len(withTotal) == 0 {
		return rep
	}
	mean := float64(totalSum) / float64(len(withTotal))
	rep.TotalMean = &mean

	asc := append([]Row(nil), withTotal...)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Total < asc[j].Total })
	desc := append([]Row(nil), withTotal...)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Total > desc[j].Total })

	rep.Fastest = head(asc, topN)
	rep.Slowest = head(desc, topN)
	return rep
}

func head(rows []Row, n int) []Row {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

// Anomalies lists every negative segment in row order.
func (r Report) Anomalies() []Anomaly {
	var out []Anomaly
	for _, row := range r.Rows {
		for _, seg := range row.Segments {
			if seg.Days < 0 {
				out = append(out, Anomaly{CaseNumber: row.CaseNumber, Segment: seg})
			}
		}
	}
	return out
}

// NonNegative drops negative segments and recomputes the aggregates. Rows
// and their totals are kept.
func (r Report) NonNegative() Report {
	rows := make([]Row, len(r.Rows))
	for i, row := range r.Rows {
		segs := make([]Segment, 0, len(row.Segments))
		for _, seg := range row.Segments {
			if seg.Days >= 0 {
				segs = append(segs, seg)
			}
		}
		row.Segments = segs
		rows[i] = row
	}
	topN := r.topN
	if topN <= 0 {
		topN = defaultTopN
	}
	return aggregate(rows, topN)
}
