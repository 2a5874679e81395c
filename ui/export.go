package ui

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"convsig/adapters/export"
)

// handleAnalyzeExport runs an analysis and streams it as an xlsx workbook.
func (s *Server) handleAnalyzeExport(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := s.service.Analyze(c.Request.Context(), req.Successful, req.Failed)
	if err != nil {
		internalError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, result, req.Successful, req.Failed); err != nil {
		internalError(c, err)
		return
	}

	filename := fmt.Sprintf("analysis-%s.xlsx", result.AnalysisID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
