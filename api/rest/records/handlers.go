package records

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"

	"codeberg.org/finpilot/server/api/rest/pagination"
	"codeberg.org/finpilot/server/finpilot/records"
	"codeberg.org/finpilot/server/internal/auth"
	"codeberg.org/finpilot/server/internal/errors"
	"codeberg.org/finpilot/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// ListTransactionsHandler godoc
// @Summary List transactions
// @Description List the caller's transactions, newest first
// @Tags records
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/transactions [get]
// @Security BearerAuth
func ListTransactionsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		txs := store.LoadFiltered(c.Request.Context(), records.CategoryTransactions, userID)

		// ISO timestamps order lexicographically
		sort.SliceStable(txs, func(i, j int) bool {
			ti, _ := txs[i].String("timestamp")
			tj, _ := txs[j].String("timestamp")
			return ti > tj
		})

		c.JSON(http.StatusOK, page(c, txs))
	}
}

// CreateTransactionHandler godoc
// @Summary Add a transaction
// @Tags records
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} map[string]any
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/transactions [post]
// @Security BearerAuth
func CreateTransactionHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req CreateTransactionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !req.Amount.IsPositive() {
			errors.BadRequest(c, "amount must be greater than zero", nil)
			return
		}

		in := records.NewTransaction{
			Amount:        req.Amount,
			Currency:      req.Currency,
			Category:      req.Category,
			MerchantName:  req.MerchantName,
			PaymentMethod: req.PaymentMethod,
			City:          req.City,
			Country:       req.Country,
			Tags:          req.Tags,
		}
		if req.Timestamp != nil {
			in.Timestamp = *req.Timestamp
		}

		rec, err := store.AddTransaction(c.Request.Context(), userID, in)
		if err != nil {
			errors.InternalError(c, "failed to add transaction", err)
			return
		}

		logger.FromContext(c.Request.Context()).Info("transaction added", "transaction_id", rec.ID(records.CategoryTransactions))

		c.JSON(http.StatusCreated, rec)
	}
}

// DeleteTransactionHandler godoc
// @Summary Delete a transaction
// @Tags records
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/transactions/{id} [delete]
// @Security BearerAuth
func DeleteTransactionHandler(store Store) gin.HandlerFunc {
	return deleteHandler("transaction", store.DeleteTransaction)
}

// ListAssetsHandler godoc
// @Summary List financial assets
// @Tags records
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/assets [get]
// @Security BearerAuth
func ListAssetsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		assets := store.LoadFiltered(c.Request.Context(), records.CategoryAssets, userID)
		c.JSON(http.StatusOK, page(c, assets))
	}
}

// DeleteAssetHandler godoc
// @Summary Delete a financial asset
// @Tags records
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/assets/{id} [delete]
// @Security BearerAuth
func DeleteAssetHandler(store Store) gin.HandlerFunc {
	return deleteHandler("asset", store.DeleteAsset)
}

// ListStrategiesHandler godoc
// @Summary List investment strategies
// @Description Strategies are shared by every account
// @Tags records
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} ListResponse
// @Router /api/v1/strategies [get]
// @Security BearerAuth
func ListStrategiesHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		strategies := store.LoadFiltered(c.Request.Context(), records.CategoryStrategies, userID)
		c.JSON(http.StatusOK, page(c, strategies))
	}
}

// ExportHandler godoc
// @Summary Export data
// @Description Download the caller's transactions and assets plus the shared strategies as JSON
// @Tags records
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/v1/export [get]
// @Security BearerAuth
func ExportHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		doc, err := store.Export(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to export records", err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
		c.JSON(http.StatusOK, doc)
	}
}

func deleteHandler(resource string, remove func(ctx context.Context, ownerID, id string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		err := remove(c.Request.Context(), userID, c.Param("id"))
		if stderrors.Is(err, records.ErrNotFound) {
			errors.NotFound(c, resource)
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to delete "+resource, err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: resource + " deleted"})
	}
}

func page(c *gin.Context, recs []records.Record) ListResponse {
	params := pagination.FromQuery(c, defaultPageSize, maxPageSize)
	start, end := params.Window(len(recs))

	return ListResponse{
		Records:    recs[start:end],
		Pagination: pagination.NewMeta(params, len(recs)),
	}
}
