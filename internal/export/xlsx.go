// Package export writes the progress table to a spreadsheet.
package export

import (
	"fmt"
	"io"

	"fab-progress/internal/models"
	"fab-progress/internal/progress"

	"github.com/xuri/excelize/v2"
)

const sheetName = "工程案執行進度"

type column struct {
	header string
	value  func(p *models.Project) string
}

var columns = []column{
	{"施工順序", func(p *models.Project) string { return p.StatusText }},
	{"完成率", func(p *models.Project) string { return p.Completion }},
	{"備料", func(p *models.Project) string { return p.Materials }},
	{"案號", func(p *models.Project) string { return p.CaseNumber }},
	{"工程名稱", func(p *models.Project) string { return p.ProjectName }},
	{"業主", func(p *models.Project) string { return p.Client }},
	{"備註", func(p *models.Project) string { return p.TrackingNote }},
	{"製造圖面", func(p *models.Project) string { return p.Drawing }},
	{"管撐", func(p *models.Project) string { return p.PipeSupport }},
	{"研磨點焊", func(p *models.Project) string { return p.Welding }},
	{"NDE", func(p *models.Project) string { return p.NDE }},
	{"噴砂", func(p *models.Project) string { return p.Sandblast }},
	{"組立", func(p *models.Project) string { return p.Assembly }},
	{"噴漆", func(p *models.Project) string { return p.Painting }},
	{"試壓", func(p *models.Project) string { return p.PressureTest }},
	{"交站", func(p *models.Project) string { return p.Handover }},
	{"年份", func(p *models.Project) string { return p.HandoverYear }},
	{"窗口", func(p *models.Project) string { return p.Contact }},
}

// Headers returns the column titles in export order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Projects writes one row per project, filled with its category colour.
func Projects(w io.Writer, projects []models.Project) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1A3A5C"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	styles := map[progress.Category]int{}
	for _, cat := range progress.Categories {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{cat.Palette().Background}},
		})
		if err != nil {
			return fmt.Errorf("row style %s: %w", cat, err)
		}
		styles[cat] = id
	}

	for i := range projects {
		p := &projects[i]
		rowNum := i + 2
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			row[j] = c.value(p)
		}
		first, _ := excelize.CoordinatesToCellName(1, rowNum)
		end, _ := excelize.CoordinatesToCellName(len(columns), rowNum)
		if err := f.SetSheetRow(sheetName, first, &row); err != nil {
			return fmt.Errorf("write row %d: %w", rowNum, err)
		}
		style, ok := styles[p.StatusCategory]
		if !ok {
			style = styles[progress.CategoryNotStarted]
		}
		if err := f.SetCellStyle(sheetName, first, end, style); err != nil {
			return fmt.Errorf("style row %d: %w", rowNum, err)
		}
	}

	if err := f.SetColWidth(sheetName, "E", "E", 36); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
