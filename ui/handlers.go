package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"convsig/domain/outcome"
	"convsig/internal"
	"convsig/internal/correction"
	"convsig/internal/errors"
)

// analyzeRequest is the transport shape of one analysis request.
type analyzeRequest struct {
	Successful []outcome.OutcomeRecord `json:"successful" binding:"required"`
	Failed     []outcome.OutcomeRecord `json:"failed" binding:"required"`
}

// twoSampleRequest carries two raw samples for the direct test endpoints.
type twoSampleRequest struct {
	SampleA []float64 `json:"sample_a" binding:"required"`
	SampleB []float64 `json:"sample_b" binding:"required"`
}

// proportionRequest carries a binomial observation.
type proportionRequest struct {
	Successes  int     `json:"successes"`
	Total      int     `json:"total"`
	Confidence float64 `json:"confidence"`
}

// correctionRequest carries a p-value family for multiple-testing correction.
type correctionRequest struct {
	Method  string    `json:"method"`
	PValues []float64 `json:"p_values" binding:"required"`
	Alpha   float64   `json:"alpha"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
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
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalyzeBatch(c *gin.Context) {
	var req struct {
		Requests []outcome.AnalysisRequest `json:"requests" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	results, err := s.service.AnalyzeBatch(c.Request.Context(), req.Requests)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleWelch(c *gin.Context) {
	var req twoSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respondTestResult(c, s.suite.WelchTTest(req.SampleA, req.SampleB))
}

func (s *Server) handleMannWhitney(c *gin.Context) {
	var req twoSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respondTestResult(c, s.suite.MannWhitneyU(req.SampleA, req.SampleB))
}

func (s *Server) handleWilson(c *gin.Context) {
	var req proportionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Total < req.Successes || req.Total < 0 {
		badRequest(c, errors.InvalidInput("successes cannot exceed total"))
		return
	}
	c.JSON(http.StatusOK, s.suite.WilsonInterval(req.Successes, req.Total, req.Confidence))
}

func (s *Server) handlePermutation(c *gin.Context) {
	var req twoSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	respondTestResult(c, s.suite.PermutationTest(req.SampleA, req.SampleB, nil))
}

func (s *Server) handleBootstrap(c *gin.Context) {
	var req struct {
		Sample []float64 `json:"sample" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, s.suite.BootstrapCI(req.Sample, nil))
}

func (s *Server) handleCorrections(c *gin.Context) {
	var req correctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	alpha := req.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = s.suite.Alpha()
	}

	var result outcome.MultipleTestingCorrection
	switch req.Method {
	case correction.MethodBonferroni:
		result = correction.Bonferroni(req.PValues, alpha)
	case correction.MethodBenjaminiHochberg, "":
		result = correction.BenjaminiHochberg(req.PValues, alpha)
	default:
		badRequest(c, errors.InvalidInput("unknown correction method: "+req.Method))
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.service.CacheStats())
}

func (s *Server) handleCacheInvalidate(c *gin.Context) {
	s.service.InvalidateCache()
	c.Status(http.StatusNoContent)
}

// respondTestResult writes a test result, logging the cause when the test
// degraded to a neutral outcome.
func respondTestResult(c *gin.Context, res outcome.TestResult) {
	if cause := res.DegradationCause(); cause != nil {
		internal.DefaultLogger.Debug("test degraded: %v", cause)
	}
	c.JSON(http.StatusOK, res)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
