package infra

// pdf.go: employee points statement using go-pdf/fpdf.
// A4 portrait with:
//   - Header with employee name, e-mail and generation date
//   - Current balance
//   - History table (date, description, signed amount)

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// StatementLine is one history row printed on the statement.
type StatementLine struct {
	Date        time.Time
	Description string
	Amount      int64
}

// Statement is the input of GenerateStatementPDF.
type Statement struct {
	EmployeeName  string
	EmployeeEmail string
	Balance       int64
	GeneratedAt   time.Time
	Lines         []StatementLine
}

// GenerateStatementPDF renders the statement and returns the PDF bytes.
func GenerateStatementPDF(st Statement) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Points statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s <%s>", st.EmployeeName, st.EmployeeEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, "Generated "+st.GeneratedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Current balance: %d points", st.Balance), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Table ────────────────────────────────────────────────────────────────
	colDate := contentW * 0.22
	colDesc := contentW * 0.60
	colAmount := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDate, 6, "Date", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colDesc, 6, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Points", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(st.Lines) == 0 {
		pdf.CellFormat(contentW, 6, "No movements yet.", "", 1, "L", false, 0, "")
	}
	for _, l := range st.Lines {
		desc := l.Description
		if len(desc) > 70 {
			desc = desc[:69] + "..."
		}
		pdf.CellFormat(colDate, 6, l.Date.Format("02/01/2006 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colDesc, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 6, fmt.Sprintf("%+d", l.Amount), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render statement: %w", err)
	}
	return buf.Bytes(), nil
}
