package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/miyannishar/eco-logic-backend/internal/http/response"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/services"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

type ReportStorageHandler struct {
	log     *logger.Logger
	reports services.ReportAnalysisService
	files   store.ReportStore
}

func NewReportStorageHandler(log *logger.Logger, reports services.ReportAnalysisService, files store.ReportStore) *ReportStorageHandler {
	return &ReportStorageHandler{
		log:     log.With("handler", "ReportStorageHandler"),
		reports: reports,
		files:   files,
	}
}

func (h *ReportStorageHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": "Work's Like a Charm"})
}

// AnalyseAndUpload validates and analyses a medical report upload, then
// persists the file and the extracted record. Validation problems are 400s;
// everything downstream is a 500. Both use the {detail} body.
func (h *ReportStorageHandler) AnalyseAndUpload(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		response.RespondDetail(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.RespondDetail(c, http.StatusBadRequest, "missing or unreadable file upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error("Failed to read report upload", "filename", header.Filename, "error", err)
		response.RespondDetail(c, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	result, err := h.reports.AnalyzeAndStore(c.Request.Context(), services.ReportUploadInput{
		UserID:      userID,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			response.RespondDetail(c, http.StatusBadRequest, verr.Detail)
			return
		}
		h.log.Error("Report analysis failed", "filename", header.Filename, "user_id", userID, "error", err)
		response.RespondDetail(c, http.StatusInternalServerError, fmt.Sprintf("Error processing file: %s", err))
		return
	}
	response.RespondOK(c, result)
}

// FetchUserReports lists a user's stored report URLs. The user id is taken
// from the query string or a JSON body, under either the userId or user_id
// key, so both GET and POST callers work.
func (h *ReportStorageHandler) FetchUserReports(c *gin.Context) {
	userID := fetchReportsUserID(c)
	if userID == "" {
		response.RespondDetail(c, http.StatusBadRequest, "userId is required")
		return
	}

	result, err := h.reports.FetchUserReportURLs(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("Failed to fetch user reports", "user_id", userID, "error", err)
		response.RespondDetail(c, http.StatusNotFound, fmt.Sprintf("User not Found: %s", userID))
		return
	}
	response.RespondOK(c, result)
}

func fetchReportsUserID(c *gin.Context) string {
	if id := c.Query("userId"); id != "" {
		return id
	}
	if id := c.Query("user_id"); id != "" {
		return id
	}
	var body struct {
		UserID    string `json:"userId"`
		UserIDAlt string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		if body.UserID != "" {
			return body.UserID
		}
		return body.UserIDAlt
	}
	return ""
}

// GetFile streams a stored file inline with its original content type. The
// response is byte-identical to what was uploaded.
func (h *ReportStorageHandler) GetFile(c *gin.Context) {
	h.serveFile(c, c.Param("file_id"), "", false)
}

// DownloadFile streams a stored file as an attachment under the filename
// given in the path.
func (h *ReportStorageHandler) DownloadFile(c *gin.Context) {
	h.serveFile(c, c.Param("file_id"), c.Param("filename"), true)
}

func (h *ReportStorageHandler) serveFile(c *gin.Context, fileID, filename string, attachment bool) {
	file, err := h.files.GetFile(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			response.RespondDetail(c, http.StatusNotFound, "File not found")
			return
		}
		h.log.Error("Failed to load stored file", "file_id", fileID, "error", err)
		response.RespondDetail(c, http.StatusInternalServerError, "failed to load file")
		return
	}

	if filename == "" {
		filename = file.Filename
	}
	disposition := "inline"
	if attachment {
		disposition = "attachment"
	}
	// Stored files are embedded cross-origin by the frontend.
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
