package models

import (
	"time"

	"fab-progress/internal/progress"

	"gorm.io/gorm"
)

// Project is one fabrication job row. Stage columns hold whatever the shop
// typed: usually "M/D", sometimes a full date or a note.
type Project struct {
	gorm.Model

	Section     string `gorm:"size:50;index" json:"section"`
	CaseNumber  string `gorm:"size:64;index" json:"case_no"`
	ProjectName string `gorm:"size:255" json:"project_name"`
	Client      string `gorm:"size:255" json:"client"`
	Contact     string `gorm:"size:255" json:"contact"`
	Materials   string `gorm:"size:255" json:"materials"`

	StatusText     string            `gorm:"type:text" json:"status"`  // 施工順序
	Completion     string            `gorm:"size:8" json:"completion"` // "60%" or ""
	StatusCategory progress.Category `gorm:"type:varchar(20);index" json:"status_category"`
	// CategoryInferred marks a category that came from the status text and
	// may be re-inferred on the next save.
	CategoryInferred bool   `json:"status_inferred"`
	TrackingNote     string `gorm:"type:text" json:"tracking"`

	Drawing      string `gorm:"size:64" json:"drawing"`
	PipeSupport  string `gorm:"size:64" json:"pipe_support"`
	Welding      string `gorm:"size:64" json:"welding"`
	NDE          string `gorm:"size:64" json:"nde"`
	Sandblast    string `gorm:"size:64" json:"sandblast"`
	Assembly     string `gorm:"size:64" json:"assembly"`
	Painting     string `gorm:"size:64" json:"painting"`
	PressureTest string `gorm:"size:64" json:"pressure_test"`
	Handover     string `gorm:"size:64" json:"handover"`

	HandoverYear string `gorm:"size:8;index" json:"handover_year"` // ROC year, e.g. "115"
}

// StageDates maps the stage columns by stage name.
func (p *Project) StageDates() map[progress.Stage]string {
	return map[progress.Stage]string{
		progress.StageDrawing:      p.Drawing,
		progress.StagePipeSupport:  p.PipeSupport,
		progress.StageWelding:      p.Welding,
		progress.StageNDE:          p.NDE,
		progress.StageSandblast:    p.Sandblast,
		progress.StageAssembly:     p.Assembly,
		progress.StagePainting:     p.Painting,
		progress.StagePressureTest: p.PressureTest,
		progress.StageHandover:     p.Handover,
	}
}

// StageField returns a pointer to the column for a stage, or nil.
func (p *Project) StageField(s progress.Stage) *string {
	switch s {
	case progress.StageDrawing:
		return &p.Drawing
	case progress.StagePipeSupport:
		return &p.PipeSupport
	case progress.StageWelding:
		return &p.Welding
	case progress.StageNDE:
		return &p.NDE
	case progress.StageSandblast:
		return &p.Sandblast
	case progress.StageAssembly:
		return &p.Assembly
	case progress.StagePainting:
		return &p.Painting
	case progress.StagePressureTest:
		return &p.PressureTest
	case progress.StageHandover:
		return &p.Handover
	}
	return nil
}

func (p *Project) Record() progress.Record {
	return progress.Record{
		Section:        p.Section,
		CaseNumber:     p.CaseNumber,
		ProjectName:    p.ProjectName,
		Client:         p.Client,
		Contact:        p.Contact,
		StatusText:     p.StatusText,
		Completion:     p.Completion,
		StageDates:     p.StageDates(),
		StatusCategory: p.StatusCategory,
		TrackingNote:   p.TrackingNote,
	}
}

// Resolve recomputes the category and completion in place. It runs on every
// save. A previously inferred category should be cleared first (see
// ForgetInferred) so edits to the status text are picked up.
func (p *Project) Resolve() progress.Resolution {
	res := progress.Resolve(p.Record())
	p.StatusCategory = res.Category
	p.CategoryInferred = res.Inferred
	p.Completion = res.Completion
	return res
}

// ForgetInferred drops a category that was inferred rather than chosen.
func (p *Project) ForgetInferred() {
	if p.CategoryInferred {
		p.StatusCategory = ""
	}
}

// Touched reports whether the row changed since the Monday of now's week.
func (p *Project) Touched(now time.Time) bool {
	return !p.UpdatedAt.Before(progress.WeekStart(now))
}
