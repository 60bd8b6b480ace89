package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DetailEnvelope is the validation / storage error body: {"detail": "..."}.
type DetailEnvelope struct {
	Detail string `json:"detail"`
}

// PipelineEnvelope is the product-pipeline failure body. Status is always
// "failed"; Step distinguishes file handling from processing.
type PipelineEnvelope struct {
	Error  string `json:"error"`
	Status string `json:"status"`
	Step   string `json:"step"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, DetailEnvelope{Detail: detail})
}

func RespondPipelineFailure(c *gin.Context, step, reason string) {
	c.JSON(http.StatusInternalServerError, PipelineEnvelope{
		Error:  reason,
		Status: "failed",
		Step:   step,
	})
}
