package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fab-progress/internal/config"
	"fab-progress/internal/database"
	"fab-progress/internal/models"
	"fab-progress/internal/progress"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// now is replaced in tests.
var now = time.Now

//
// FILTERS
//

// parseFilters reads section, year and status from the query string. status
// is a comma list of keys or labels.
func parseFilters(c *gin.Context) (models.Filters, error) {
	f := models.Filters{
		Section: strings.TrimSpace(c.Query("section")),
		Year:    strings.TrimSpace(c.Query("year")),
	}
	statuses, err := normalizeStatuses(strings.Split(c.Query("status"), ","))
	if err != nil {
		return models.Filters{}, err
	}
	f.Statuses = statuses
	return f, nil
}

// requestFilters is parseFilters, or the last persisted selection with
// saved=true. It writes the error response itself.
func requestFilters(c *gin.Context) (models.Filters, bool) {
	if c.Query("saved") == "true" {
		f, err := database.LoadFilters()
		if err != nil {
			fail(c, http.StatusInternalServerError, "could not load filters", err)
			return models.Filters{}, false
		}
		return f, true
	}
	f, err := parseFilters(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error(), nil)
		return models.Filters{}, false
	}
	return f, true
}

func normalizeStatuses(in []string) ([]string, error) {
	var out []string
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cat, ok := progress.ParseCategory(s)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", s)
		}
		out = append(out, string(cat))
	}
	return out, nil
}

//
// LIST
//

type projectRow struct {
	models.Project
	Palette         progress.Palette `json:"palette"`
	ThisWeek        []progress.Stage `json:"this_week"`
	UpdatedThisWeek bool             `json:"updated_this_week"`
}

func toRows(projects []models.Project, at time.Time) []projectRow {
	rows := make([]projectRow, len(projects))
	for i := range projects {
		p := projects[i]
		rows[i] = projectRow{
			Project:         p,
			Palette:         p.StatusCategory.Palette(),
			ThisWeek:        progress.WeekStages(p.Record(), at),
			UpdatedThisWeek: p.Touched(at),
		}
	}
	return rows
}

func records(projects []models.Project) []progress.Record {
	out := make([]progress.Record, len(projects))
	for i := range projects {
		out[i] = projects[i].Record()
	}
	return out
}

func ListProjects(c *gin.Context) {
	f, ok := requestFilters(c)
	if !ok {
		return
	}

	projects, err := database.FindProjects(f)
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load projects", err)
		return
	}

	render(c, http.StatusOK, gin.H{
		"projects": toRows(projects, now()),
		"counts":   progress.CountByCategory(records(projects)),
		"filters":  f,
	})
}

//
// CREATE / UPDATE
//

// projectForm carries only the fields the client sent; nil leaves the
// stored value alone.
type projectForm struct {
	Section        *string `json:"section"`
	CaseNumber     *string `json:"case_no"`
	ProjectName    *string `json:"project_name"`
	Client         *string `json:"client"`
	Contact        *string `json:"contact"`
	Materials      *string `json:"materials"`
	StatusText     *string `json:"status"`
	Completion     *string `json:"completion"`
	StatusCategory *string `json:"status_category"`
	TrackingNote   *string `json:"tracking"`
	HandoverYear   *string `json:"handover_year"`

	Drawing      *string `json:"drawing"`
	PipeSupport  *string `json:"pipe_support"`
	Welding      *string `json:"welding"`
	NDE          *string `json:"nde"`
	Sandblast    *string `json:"sandblast"`
	Assembly     *string `json:"assembly"`
	Painting     *string `json:"painting"`
	PressureTest *string `json:"pressure_test"`
	Handover     *string `json:"handover"`
}

func (f projectForm) stages() map[progress.Stage]*string {
	return map[progress.Stage]*string{
		progress.StageDrawing:      f.Drawing,
		progress.StagePipeSupport:  f.PipeSupport,
		progress.StageWelding:      f.Welding,
		progress.StageNDE:          f.NDE,
		progress.StageSandblast:    f.Sandblast,
		progress.StageAssembly:     f.Assembly,
		progress.StagePainting:     f.Painting,
		progress.StagePressureTest: f.PressureTest,
		progress.StageHandover:     f.Handover,
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

var errBadSection = errors.New("unknown section")

// apply merges the form into p and re-resolves status and completion. An
// empty status_category hands classification back to the status text.
func (f projectForm) apply(p *models.Project, div config.Divisions) error {
	set(&p.Section, f.Section)
	if !div.HasSection(p.Section) {
		return fmt.Errorf("%w %q", errBadSection, p.Section)
	}
	set(&p.CaseNumber, f.CaseNumber)
	set(&p.ProjectName, f.ProjectName)
	set(&p.Client, f.Client)
	set(&p.Contact, f.Contact)
	set(&p.Materials, f.Materials)
	set(&p.StatusText, f.StatusText)
	set(&p.Completion, f.Completion)
	set(&p.TrackingNote, f.TrackingNote)
	set(&p.HandoverYear, f.HandoverYear)
	for stage, v := range f.stages() {
		set(p.StageField(stage), v)
	}

	switch {
	case f.StatusCategory == nil:
		p.ForgetInferred()
	case strings.TrimSpace(*f.StatusCategory) == "":
		p.StatusCategory = ""
	default:
		cat, ok := progress.ParseCategory(*f.StatusCategory)
		if !ok {
			return fmt.Errorf("unknown status %q", *f.StatusCategory)
		}
		p.StatusCategory = cat
		p.CategoryInferred = false
	}

	p.Resolve()
	return nil
}

func CreateProject(div config.Divisions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form projectForm
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, "invalid project body", nil)
			return
		}

		var project models.Project
		if err := form.apply(&project, div); err != nil {
			fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		if err := database.DB.Create(&project).Error; err != nil {
			fail(c, http.StatusInternalServerError, "could not save project", err)
			return
		}

		database.CreateAuditLog(actor, "project", project.ID, "create",
			"created "+project.CaseNumber+" "+project.ProjectName)

		render(c, http.StatusCreated, toRows([]models.Project{project}, now())[0])
	}
}

func loadProject(c *gin.Context) (models.Project, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid project id", nil)
		return models.Project{}, false
	}

	var project models.Project
	err = database.DB.First(&project, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusNotFound, "project not found", nil)
		return models.Project{}, false
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "could not load project", err)
		return models.Project{}, false
	}
	return project, true
}

func UpdateProject(div config.Divisions) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := loadProject(c)
		if !ok {
			return
		}

		var form projectForm
		if err := c.ShouldBindJSON(&form); err != nil {
			fail(c, http.StatusBadRequest, "invalid project body", nil)
			return
		}

		before := project.Completion
		if err := form.apply(&project, div); err != nil {
			fail(c, http.StatusBadRequest, err.Error(), nil)
			return
		}

		if err := database.DB.Save(&project).Error; err != nil {
			fail(c, http.StatusInternalServerError, "could not save project", err)
			return
		}

		database.CreateAuditLog(actor, "project", project.ID, "update",
			fmt.Sprintf("updated %s: completion %q -> %q, status %s",
				project.CaseNumber, before, project.Completion, project.StatusCategory))

		render(c, http.StatusOK, toRows([]models.Project{project}, now())[0])
	}
}

//
// DELETE
//

func DeleteProject(c *gin.Context) {
	project, ok := loadProject(c)
	if !ok {
		return
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		fail(c, http.StatusInternalServerError, "could not delete project", err)
		return
	}

	database.CreateAuditLog(actor, "project", project.ID, "delete",
		"deleted "+project.CaseNumber+" "+project.ProjectName)

	render(c, http.StatusOK, gin.H{"deleted": project.ID})
}
