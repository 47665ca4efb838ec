package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lbs-school/receipts-api/internal/application/events"
	"github.com/lbs-school/receipts-api/internal/application/service"
	"github.com/lbs-school/receipts-api/internal/presentation/http/dto/request"
	"github.com/lbs-school/receipts-api/internal/presentation/http/dto/response"
	"github.com/lbs-school/receipts-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	broker         *events.Broker
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, broker *events.Broker) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, broker: broker}
}

// List handles listing the caller's receipts, newest first. An optional
// search query filters by student name, receipt number, class or father's
// name (case-insensitive substring).
func (h *ReceiptHandler) List(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	search := c.Query("search")

	params := &pagination.Params{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), owner, params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		Owner:         owner,
		ReceiptNo:     req.ReceiptNo,
		StudentName:   req.StudentName,
		FatherName:    req.FatherName,
		StudentClass:  req.StudentClass,
		RollNo:        req.RollNo,
		Session:       req.Session,
		FeeType:       req.FeeType,
		Amount:        int64(req.Amount),
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
		Remarks:       req.Remarks,
		Date:          req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Update handles a partial receipt update
func (h *ReceiptHandler) Update(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req request.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var amount *int64
	if req.Amount != nil {
		v := int64(*req.Amount)
		amount = &v
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), &service.UpdateReceiptInput{
		ID:            id,
		Owner:         owner,
		ReceiptNo:     req.ReceiptNo,
		StudentName:   req.StudentName,
		FatherName:    req.FatherName,
		StudentClass:  req.StudentClass,
		RollNo:        req.RollNo,
		Session:       req.Session,
		FeeType:       req.FeeType,
		Amount:        amount,
		PaymentMode:   req.PaymentMode,
		TransactionID: req.TransactionID,
		Remarks:       req.Remarks,
		Date:          req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}

// Delete handles deleting a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Stats handles the caller's receipt statistics (count and total amount)
func (h *ReceiptHandler) Stats(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.receiptService.GetStats(c.Request.Context(), owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt statistics retrieved successfully", stats)
}

// Print returns the plain-text printable rendering of a receipt
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	text, err := h.receiptService.RenderPrintable(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

// Events streams the caller's receipt changes over SSE. Every create,
// update and delete for the owner's collection produces one event, so
// history and stats views refresh without polling.
func (h *ReceiptHandler) Events(c *gin.Context) {
	owner := GetUserEmail(c)
	if owner == "" {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	ch, cancel := h.broker.Subscribe(owner)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("receipt", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
