package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/services/payment"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler serves payment proof uploads and card payment intents.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// UploadProof handles POST /api/appointments/:id/proof/upload (multipart field "file").
func (h *PaymentHandler) UploadProof(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, payment.MaxProofSize+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("file is required"))
		return
	}
	defer file.Close()

	proof, err := h.Service.UploadProof(c.Request.Context(), middleware.TenantID(c), c.Param("id"), payment.ProofFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		getLogger(c).Warn("payment proof rejected", zap.String("appointmentId", c.Param("id")), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, proof)
}

// CreatePaymentIntent handles POST /api/appointments/:id/payment-intent.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	intent, err := h.Service.CreateIntent(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}
