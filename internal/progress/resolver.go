package progress

import (
	"math"
	"strconv"
	"strings"
)

// Band is an inclusive percentage range in which a manually entered
// completion is kept instead of being reset to the band floor.
type Band struct {
	Min, Max int
}

func (b Band) Contains(p int) bool { return p >= b.Min && p <= b.Max }

var (
	AssemblyBand  = Band{Min: 60, Max: 80}
	FinishingBand = Band{Min: 85, Max: 90}
)

const (
	pendingFloor  = 95
	completedFull = 100
)

// Keywords searched in the free-text status column.
const (
	KeywordInProgress = "製作中"
	KeywordSuspended  = "停工"
	KeywordPending    = "待交站"
	KeywordHandedOver = "已交站"
	KeywordHandover   = "交站"
)

// Resolution is the derived state of a record.
type Resolution struct {
	Category   Category `json:"status_category"`
	Percent    int      `json:"percent"`
	Completion string   `json:"completion"`
	// Inferred is set when Category came from keyword matching rather than
	// from an explicit value on the record.
	Inferred bool `json:"inferred"`
}

// Resolve derives the status category and completion of a record. Later
// rules override earlier ones; the stage fills are evaluated from scratch
// every time, so clearing a stage lowers the result.
func Resolve(r Record) Resolution {
	manual := ParsePercent(r.Completion)

	pct := 0
	if r.Filled(StagePipeSupport) {
		pct = 20
	}
	if r.Filled(StageWelding) {
		pct = 30
	}
	if r.Filled(StageNDE) {
		pct = 40
	}
	if r.Filled(StageSandblast) {
		pct = 50
	}
	if r.Filled(StageAssembly) {
		if AssemblyBand.Contains(manual) {
			pct = manual
		} else {
			pct = AssemblyBand.Min
		}
	}
	if r.Filled(StagePainting) || r.Filled(StagePressureTest) {
		if FinishingBand.Contains(manual) {
			pct = manual
		} else {
			pct = FinishingBand.Min
		}
	}

	res := Resolution{Category: r.StatusCategory}
	if !res.Category.Valid() {
		res.Category = InferCategory(r.StatusText, strings.TrimSpace(r.Completion) == "100%")
		res.Inferred = true
	}

	switch res.Category {
	case CategoryPending:
		if pct < pendingFloor {
			pct = pendingFloor
		}
	case CategoryCompleted:
		pct = completedFull
	}

	res.Percent = pct
	res.Completion = FormatPercent(pct)
	return res
}

// InferCategory classifies free text by keyword, first match wins.
func InferCategory(statusText string, full bool) Category {
	switch {
	case strings.Contains(statusText, KeywordInProgress) && !strings.Contains(statusText, KeywordSuspended):
		return CategoryInProgress
	case strings.Contains(statusText, KeywordPending):
		return CategoryPending
	case strings.Contains(statusText, KeywordSuspended):
		return CategorySuspended
	case strings.Contains(statusText, KeywordHandedOver), strings.Contains(statusText, KeywordHandover), full:
		return CategoryCompleted
	default:
		return CategoryNotStarted
	}
}

// ParsePercent reads "72%", "72", " 72.5 % " and similar. Anything it cannot
// read is 0.
func ParsePercent(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > 1e6 {
		return 0
	}
	return int(f)
}

// FormatPercent renders 0 as the empty string.
func FormatPercent(p int) string {
	if p <= 0 {
		return ""
	}
	return strconv.Itoa(p) + "%"
}
