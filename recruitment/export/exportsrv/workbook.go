package exportsrv

import (
	"fmt"
	"strings"

	"github.com/0Omaaar/iRecruitApp/recruitment/application"
	"github.com/0Omaaar/iRecruitApp/recruitment/candidature"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet of an export workbook
const SheetName = "Candidates"

var columns = []struct {
	header string
	width  float64
}{
	{"Name", 28},
	{"Arabic name", 28},
	{"CIN", 14},
	{"Email", 32},
	{"Phone", 18},
	{"Status", 14},
	{"Applied date", 26},
	{"Diploma", 36},
	{"Diplomas", 10},
	{"Languages", 40},
}

// BuildWorkbook renders profiles as one row each below a header row
func BuildWorkbook(profiles []application.CandidateProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range profiles {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := profileRow(p)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func profileRow(p application.CandidateProfile) []any {
	c := candidature.Candidature{
		PersonalInformation:     p.PersonalInformation,
		ProfessionalInformation: p.ProfessionalInformation,
	}
	return []any{
		c.FullName(),
		c.ArabicName(),
		c.CIN(),
		c.Email(),
		strings.TrimSpace(p.PersonalInformation.Telephone),
		p.Status.Label().Fr,
		p.AppliedDate,
		diploma(p, &c),
		len(p.ProfessionalInformation.ParcoursEtDiplomes),
		strings.Join(c.Languages(), ", "),
	}
}

// diploma prefers the label chosen on the application over the dossier
func diploma(p application.CandidateProfile, c *candidature.Candidature) string {
	if d := strings.TrimSpace(p.ApplicationDiploma); d != "" {
		return d
	}
	return c.LatestDiploma()
}
