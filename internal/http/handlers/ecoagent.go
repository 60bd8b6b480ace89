package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miyannishar/eco-logic-backend/internal/http/response"
	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/services"
)

type EcoAgentHandler struct {
	log      *logger.Logger
	products services.ProductAnalysisService
}

func NewEcoAgentHandler(log *logger.Logger, products services.ProductAnalysisService) *EcoAgentHandler {
	return &EcoAgentHandler{
		log:      log.With("handler", "EcoAgentHandler"),
		products: products,
	}
}

func (h *EcoAgentHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Prenatal - API Router Test": "Works like a Charm!!!"})
}

// ProductDetails accepts a multipart product photo or video plus the user's
// medical ailments and runs the full analysis pipeline. Failures always name
// the step: file_handling for upload I/O, processing for everything after.
func (h *EcoAgentHandler) ProductDetails(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.RespondPipelineFailure(c, services.StepFileHandling, "missing or unreadable file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read product upload", "filename", header.Filename, "error", err)
		response.RespondPipelineFailure(c, services.StepFileHandling, "failed to read uploaded file")
		return
	}

	input := services.ProductAnalysisInput{
		UserID:          c.PostForm("userId"),
		MedicalAilments: c.PostForm("userMedicalAilments"),
		File: gemini.DocumentInput{
			Bytes:    data,
			MimeType: header.Header.Get("Content-Type"),
		},
	}
	h.log.Info("Starting product analysis",
		"filename", header.Filename,
		"size_bytes", len(data),
		"user_id", input.UserID,
	)

	result, perr := h.products.Analyze(c.Request.Context(), input)
	if perr != nil {
		h.log.Error("Product analysis failed", "step", perr.Step, "stage", perr.Stage, "error", perr.Reason)
		response.RespondPipelineFailure(c, perr.Step, perr.Reason)
		return
	}
	response.RespondOK(c, result)
}
