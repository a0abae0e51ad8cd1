package handler

import (
	"net/http"
	"regexp"

	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// PaymentHandler handles the gateway webhook and portal confirmation.
type PaymentHandler struct {
	paymentService *service.PaymentService
	log            zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		log:            log.With().Str("component", "payment_handler").Logger(),
	}
}

// Notification godoc
// POST /api/v1/payments/notifications
// Public gateway webhook. The signature is verified before the notification
// is queued; the payment worker applies it.
func (h *PaymentHandler) Notification(c *gin.Context) {
	var n payment.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.paymentService.HandleNotification(c.Request.Context(), n); err != nil {
		h.log.Warn().Err(err).Str("order_id", n.OrderID).Msg("Notification refused")
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "accepted"})
}

// Confirm godoc
// POST /api/v1/payments/:order_id/confirm
// Re-checks the order with the gateway and applies the result now.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	orderID := c.Param("order_id")
	if !orderIDPattern.MatchString(orderID) {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	_, branchID := scope(c)
	p, err := h.paymentService.Confirm(c.Request.Context(), branchID, orderID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}
