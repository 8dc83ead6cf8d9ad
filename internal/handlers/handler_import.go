package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
)

// maxWorkbookBytes bounds the accepted spreadsheet upload size.
const maxWorkbookBytes = 10 << 20

// ImportHandler handles bulk spreadsheet imports.
type ImportHandler struct {
	importService portssvc.ImportSvcFacade
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(is portssvc.ImportSvcFacade) *ImportHandler {
	return &ImportHandler{importService: is}
}

// RegisterImportRoutes sets up the import routes on the authenticated group.
func RegisterImportRoutes(rg *gin.RouterGroup, is portssvc.ImportSvcFacade) {
	h := NewImportHandler(is)

	imports := rg.Group("/imports")
	{
		imports.POST("/preview", h.Preview)
		imports.POST("", h.Commit)
	}
}

// Preview godoc
// @Summary Preview a spreadsheet import
// @Description Parses an uploaded .xlsx workbook and returns the normalized rows without persisting anything. Malformed cells degrade to empty values rather than rejecting the row.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /imports/preview [post]
func (h *ImportHandler) Preview(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file upload"})
		return
	}
	if fileHeader.Size > maxWorkbookBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file upload"})
		return
	}
	defer f.Close()

	resp, err := h.importService.Preview(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to parse workbook: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Commit godoc
// @Summary Commit a staged import
// @Description Inserts the staged rows into the given country ledger in sequential batches. On a mid-import failure the response reports the batches that committed; those rows stay in the ledger.
// @Tags imports
// @Accept json
// @Produce json
// @Param import body dto.ImportRequest true "Country and staged rows"
// @Success 201 {object} dto.ImportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /imports [post]
func (h *ImportHandler) Commit(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.importService.Commit(c.Request.Context(), userID, req)
	if err != nil {
		if resp == nil {
			resp = &dto.ImportResponse{Batches: []dto.ImportBatchProgress{}}
		}
		// partial progress still goes back to the client
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "Import aborted",
			"inserted": resp.Inserted,
			"batches":  resp.Batches,
		})
		return
	}
	c.JSON(http.StatusCreated, resp)
}
