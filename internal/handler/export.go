package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/middleware"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/review"
	"github.com/MdAbdurRazzaq/ai-interview-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Order", "Question", "Transcript", "AI Score", "AI Feedback",
	"Reviewer Score", "Reviewer Notes", "Final Score", "Decision", "Status", "Recorded At",
}

func formatScore(s *float64) string {
	if s == nil {
		return ""
	}
	return strconv.FormatFloat(*s, 'f', 1, 64)
}

func (r sessionRow) exportCells() []string {
	return []string{
		strconv.Itoa(r.orderIndex + 1),
		r.questionText,
		r.resp.Transcript,
		formatScore(r.resp.AIScore),
		r.resp.AIFeedback,
		formatScore(r.resp.ReviewerScore),
		r.resp.ReviewerNotes,
		formatScore(review.EffectiveScore(r.resp.AIScore, r.resp.ReviewerScore)),
		review.Derive(r.resp.AIScore, r.resp.ReviewerScore, r.resp.Status),
		r.resp.Status,
		r.resp.CreatedAt.Format("2006-01-02 15:04"),
	}
}

// ExportSessionCSV streams one session's reviewer view as CSV.
func (h *AdminHandler) ExportSessionCSV(c *gin.Context) {
	user := middleware.CurrentUser(c)

	rows, err := h.sessionRows(user.OrganizationID, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load responses")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"session_%s_%s.csv\"",
		c.Param("id"), time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeaders)
	for _, r := range rows {
		writer.Write(r.exportCells())
	}
}

// ExportSessionXLSX exports one session's reviewer view as an xlsx workbook.
func (h *AdminHandler) ExportSessionXLSX(c *gin.Context) {
	user := middleware.CurrentUser(c)

	rows, err := h.sessionRows(user.OrganizationID, c.Param("id"))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load responses")
		return
	}

	f := excelize.NewFile()
	sheetName := "Responses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create worksheet")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx, r := range rows {
		for i, value := range r.exportCells() {
			cell, _ := excelize.CoordinatesToCellName(i+1, idx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "C", 40)
	f.SetColWidth(sheetName, "D", "D", 10)
	f.SetColWidth(sheetName, "E", "E", 40)
	f.SetColWidth(sheetName, "F", "F", 14)
	f.SetColWidth(sheetName, "G", "G", 30)
	f.SetColWidth(sheetName, "H", "J", 14)
	f.SetColWidth(sheetName, "K", "K", 18)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"session_%s_%s.xlsx\"",
		c.Param("id"), time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write export")
	}
}
