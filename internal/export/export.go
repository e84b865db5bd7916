// Package export renders a task list as a standalone document.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo-cli/internal/model"

	"github.com/jung-kurt/gofpdf"
)

// Formats lists the accepted format names.
var Formats = []string{"md", "csv", "json", "pdf"}

// Write renders tasks (already in display order) in format. title heads the
// markdown and PDF documents.
func Write(w io.Writer, tasks []model.Task, format, title string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "md", "markdown":
		return writeMarkdown(w, tasks, title)
	case "csv":
		return writeCSV(w, tasks)
	case "json":
		if tasks == nil {
			tasks = []model.Task{}
		}
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "pdf":
		return writePDF(w, tasks, title)
	default:
		return fmt.Errorf("unknown export format %q (want %s)", format, strings.Join(Formats, "|"))
	}
}

func writeMarkdown(w io.Writer, tasks []model.Task, title string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(tasks) == 0 {
		b.WriteString("_No tasks._\n")
	}
	for _, t := range tasks {
		box := " "
		if t.IsCompleted {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", box, oneLine(t.Text))
		for _, ln := range strings.Split(strings.TrimSpace(t.Notes), "\n") {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			fmt.Fprintf(&b, "  > %s\n", ln)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "text", "notes", "isCompleted"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write([]string{t.ID, t.Text, t.Notes, strconv.FormatBool(t.IsCompleted)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []model.Task, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented text survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(14)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 8, "No tasks.")
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.IsCompleted {
			box = "[x]"
		}
		text := oneLine(t.Text)
		if text == "" {
			text = "(empty)"
		}
		pdf.SetFont("Arial", "", 12)
		if t.IsCompleted {
			pdf.SetTextColor(128, 128, 128)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.MultiCell(0, 7, tr(box+" "+text), "", "L", false)
		if notes := strings.TrimSpace(t.Notes); notes != "" {
			pdf.SetFont("Arial", "I", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.SetX(pdf.GetX() + 8)
			pdf.MultiCell(0, 5, tr(notes), "", "L", false)
		}
		pdf.Ln(2)
	}
	return pdf.Output(w)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
