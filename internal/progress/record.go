// Package progress derives completion and status for fabrication jobs and
// computes how long each production stage takes.
//
// Everything here is a pure function over in-memory records: nothing is
// stored, nothing blocks, and malformed input degrades to "absent" rather
// than returning an error.
package progress

import "strings"

type Stage string

const (
	StageDrawing      Stage = "drawing"
	StagePipeSupport  Stage = "pipe_support"
	StageWelding      Stage = "welding"
	StageNDE          Stage = "nde"
	StageSandblast    Stage = "sandblast"
	StageAssembly     Stage = "assembly"
	StagePainting     Stage = "painting"
	StagePressureTest Stage = "pressure_test"
	StageHandover     Stage = "handover"
)

// Stages is the fixed production order.
var Stages = []Stage{
	StageDrawing,
	StagePipeSupport,
	StageWelding,
	StageNDE,
	StageSandblast,
	StageAssembly,
	StagePainting,
	StagePressureTest,
	StageHandover,
}

// AnalyzedStages skips drawing, which neither counts toward completion nor
// has a measured duration.
var AnalyzedStages = Stages[1:]

var stageLabels = map[Stage]string{
	StageDrawing:      "製造圖面",
	StagePipeSupport:  "管撐製作",
	StageWelding:      "點焊",
	StageNDE:          "焊道NDE",
	StageSandblast:    "噴砂",
	StageAssembly:     "組立",
	StagePainting:     "噴漆",
	StagePressureTest: "試壓",
	StageHandover:     "交站",
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

type Category string

const (
	CategoryInProgress Category = "in_progress"
	CategoryPending    Category = "pending"
	CategoryNotStarted Category = "not_started"
	CategorySuspended  Category = "suspended"
	CategoryCompleted  Category = "completed"
)

// Categories lists the closed set in palette order.
var Categories = []Category{
	CategoryInProgress,
	CategoryPending,
	CategoryNotStarted,
	CategorySuspended,
	CategoryCompleted,
}

// Palette is the presentation entry for a category.
type Palette struct {
	Label      string `json:"label"`
	Background string `json:"background"`
}

var palettes = map[Category]Palette{
	CategoryInProgress: {Label: "製作中", Background: "#FFFF99"},
	CategoryPending:    {Label: "待交站", Background: "#CCE8FF"},
	CategoryNotStarted: {Label: "未開始", Background: "#FFFFFF"},
	CategorySuspended:  {Label: "停工", Background: "#FFE0B2"},
	CategoryCompleted:  {Label: "已交站", Background: "#F0F0F0"},
}

func (c Category) Valid() bool {
	_, ok := palettes[c]
	return ok
}

// Palette returns the not-started entry for unknown values.
func (c Category) Palette() Palette {
	if p, ok := palettes[c]; ok {
		return p
	}
	return palettes[CategoryNotStarted]
}

// ParseCategory accepts either the key ("in_progress") or the display label
// ("製作中").
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if c := Category(s); c.Valid() {
		return c, true
	}
	for c, p := range palettes {
		if p.Label == s {
			return c, true
		}
	}
	return "", false
}

// Record is one fabrication job as the resolver and analyzer see it.
type Record struct {
	Section        string
	CaseNumber     string
	ProjectName    string
	Client         string
	Contact        string
	StatusText     string
	Completion     string
	StageDates     map[Stage]string
	StatusCategory Category
	TrackingNote   string
}

// Filled reports whether the stage cell has any non-blank content.
func (r Record) Filled(s Stage) bool {
	return strings.TrimSpace(r.StageDates[s]) != ""
}

// Apply returns a copy of r carrying the resolved category and completion.
func (r Record) Apply(res Resolution) Record {
	out := r
	out.StatusCategory = res.Category
	out.Completion = res.Completion
	return out
}

// Counts is the per-category tally shown above the project table.
type Counts struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"by_category"`
}

// CountByCategory tallies records by category. Every category is present in
// the result; unknown or empty categories count as not started.
func CountByCategory(records []Record) Counts {
	c := Counts{ByCategory: make(map[Category]int, len(Categories))}
	for _, cat := range Categories {
		c.ByCategory[cat] = 0
	}
	for _, r := range records {
		cat := r.StatusCategory
		if !cat.Valid() {
			cat = CategoryNotStarted
		}
		c.ByCategory[cat]++
		c.Total++
	}
	return c
}
