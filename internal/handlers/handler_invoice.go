package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
)

// maxInvoiceBytes bounds the accepted invoice upload size.
const maxInvoiceBytes = 5 << 20

// InvoiceHandler handles proof-of-transaction uploads.
type InvoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(is portssvc.InvoiceSvcFacade) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: is}
}

// RegisterInvoiceRoutes sets up the invoice routes on the authenticated group.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade) {
	h := NewInvoiceHandler(is)
	rg.POST("/invoices", h.Upload)
}

// InvoiceUploadResponse carries the public URL of a stored invoice.
type InvoiceUploadResponse struct {
	URL string `json:"url"`
}

// Upload godoc
// @Summary Upload an invoice file
// @Description Stores the uploaded file in object storage and returns its public URL, to be recorded on a transaction.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice file"
// @Success 201 {object} InvoiceUploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Upload(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing file upload"})
		return
	}
	if fileHeader.Size > maxInvoiceBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "File too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read file upload"})
		return
	}
	defer f.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.invoiceService.UploadInvoice(c.Request.Context(), fileHeader.Filename, contentType, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, InvoiceUploadResponse{URL: url})
}
