package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/finance"
	"github.com/trezcool/shule/core/student"
)

// MIME types of the supported export formats.
const (
	mimeCSV   = "text/csv; charset=utf-8"
	mimeJSON  = "application/json"
	mimePDF   = "application/pdf"
	mimeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Export is a rendered document handed to the download layer as-is.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

func datedFilename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("2006-01-02"), ext)
}

// StudentsListCSV renders the per-class student roll.
func StudentsListCSV(students []student.Student, now time.Time) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Classe", "Nom", "Prénom", "Date de naissance"})
	for _, std := range students {
		clsName := std.Class
		if clsName == "" {
			clsName = "N/A"
		}
		dob := std.DateOfBirth
		if dob == "" {
			dob = "N/A"
		}
		_ = w.Write([]string{clsName, std.LastName, std.FirstName, dob})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, errors.Wrap(err, "writing students CSV")
	}
	return Export{
		Filename:    datedFilename("liste-eleves", "csv", now),
		ContentType: mimeCSV,
		Content:     buf.Bytes(),
	}, nil
}

// OverduePaymentsCSV renders the overdue payments report.
func OverduePaymentsCSV(payments []finance.Payment, now time.Time) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Élève", "Classe", "Type", "Montant", "Date", "Échéance"})
	for _, pmt := range finance.Overdue(payments) {
		due := "N/A"
		if pmt.DueDate.Valid {
			due = pmt.DueDate.Time.Format("2006-01-02")
		}
		_ = w.Write([]string{
			pmt.StudentName,
			pmt.ClassName,
			pmt.Type,
			fmt.Sprintf("%.2f", pmt.Amount),
			pmt.Date.Format("2006-01-02"),
			due,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, errors.Wrap(err, "writing overdue payments CSV")
	}
	return Export{
		Filename:    datedFilename("paiements-retard", "csv", now),
		ContentType: mimeCSV,
		Content:     buf.Bytes(),
	}, nil
}

// GlobalReportJSON renders the full report snapshot as JSON.
func GlobalReportJSON(data Data, now time.Time) (Export, error) {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return Export{}, errors.Wrap(err, "marshalling report data")
	}
	return Export{
		Filename:    datedFilename("rapport-global", "json", now),
		ContentType: mimeJSON,
		Content:     content,
	}, nil
}

// PDFReport produces the placeholder PDF payload; real PDF encoding is out of
// scope and left to a future document pipeline.
func PDFReport(reportType, period string, now time.Time) Export {
	return Export{
		Filename:    datedFilename(fmt.Sprintf("rapport-%s-%s", reportType, period), "pdf", now),
		ContentType: mimePDF,
		Content:     []byte(fmt.Sprintf("%%PDF-SIMULATED-CONTENT-%s-%s", reportType, period)),
	}
}

// ExcelReport produces the placeholder Excel payload; see PDFReport.
func ExcelReport(reportType, period string, now time.Time) Export {
	return Export{
		Filename:    datedFilename(fmt.Sprintf("rapport-%s-%s", reportType, period), "xlsx", now),
		ContentType: mimeExcel,
		Content:     []byte(fmt.Sprintf("EXCEL-SIMULATED-CONTENT-%s-%s", reportType, period)),
	}
}
