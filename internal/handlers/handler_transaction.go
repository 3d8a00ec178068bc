package handlers

import (
	"net/http"
	"strconv"
	"strings"

	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles ledger movement requests.
type TransactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ls portssvc.LedgerSvcFacade) *TransactionHandler {
	return &TransactionHandler{ledgerService: ls}
}

// RecordMovement godoc
// @Summary Record a ledger movement
// @Description Resolves the category to its debit/credit account pair and
// persists the immutable transaction. When the counterparty is a store, the
// store balance moves in the same database transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param movement body dto.RecordMovementRequest true "Movement"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Non-positive amount"
// @Failure 404 {object} ErrorResponse "Unknown category or account"
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/transactions [post]
func (h *TransactionHandler) RecordMovement(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.ledgerService.RecordMovement(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "movement recorded", "transaction", dto.ToTransactionResponse(txn))
}

// ListTransactions godoc
// @Summary List transactions
// @Description Lists scope transactions newest first with pagination.
// @Tags transactions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Param fields query string false "Comma-separated field allowlist"
// @Success 200 {array} dto.TransactionResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.ledgerService.ListTransactions(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := dto.ToListTransactionsResponse(txns)
	if fields := c.Query("fields"); fields != "" {
		sanitized, err := dto.SanitizeList(responses, strings.Split(fields, ",")...)
		if err != nil {
			respondError(c, err)
			return
		}
		respondSuccess(c, http.StatusOK, "transactions listed", "transactions", sanitized)
		return
	}
	respondSuccess(c, http.StatusOK, "transactions listed", "transactions", responses)
}

// GetTransaction godoc
// @Summary Get transaction
// @Description Retrieves a transaction. Pass populate=true to expand the
// debit and credit account references into full account objects.
// @Tags transactions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param transactionID path string true "Transaction ID"
// @Param populate query bool false "Expand account refs"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/transactions/{transactionID} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	populate := c.Query("populate") == "true"

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("transactionID"), populate)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "transaction retrieved", "transaction", dto.ToTransactionResponse(txn))
}
