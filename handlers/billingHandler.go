package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/models"
	"ClinicDesk/stores"
	"ClinicDesk/utils"
)

type BillingHandler struct {
	store *stores.BillingStore
}

func NewBillingHandler(store *stores.BillingStore) *BillingHandler {
	return &BillingHandler{store: store}
}

func (h *BillingHandler) GetAllInvoices(c *gin.Context) {
	filters := models.InvoiceFilters{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	c.JSON(http.StatusOK, h.store.GetInvoices(c, filters))
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var draft models.InvoiceDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateInvoiceDraft(draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.store.AddInvoice(c, draft)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

// MarkInvoicePaid confirms payment of an invoice. Failures are always
// surfaced: a swallowed payment confirmation error would leave the desk
// believing an unpaid invoice settled.
func (h *BillingHandler) MarkInvoicePaid(c *gin.Context) {
	id := c.Param("invoice_id")
	var body struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateMarkPaid(body.PaymentMethod); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.store.UpdateInvoice(c, id, body.PaymentMethod)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
