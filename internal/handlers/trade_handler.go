package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
)

// TradeHandler handles trade-related requests.
type TradeHandler struct {
	tradeService services.TradeServicer
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService services.TradeServicer) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTradeRequest represents the request payload for recording a trade.
type CreateTradeRequest struct {
	AccountID string           `json:"accountId" binding:"required,uuid"`
	AssetID   string           `json:"assetId" binding:"required,uuid"`
	Date      time.Time        `json:"date" binding:"required"`
	Side      models.TradeSide `json:"side" binding:"required,trade_side"`
	Quantity  float64          `json:"quantity" binding:"required,gt=0"`
	Price     float64          `json:"price" binding:"required,gt=0"`
	Fee       float64          `json:"fee" binding:"gte=0"`
}

// ImportTradeRowRequest represents one row of a trade import.
type ImportTradeRowRequest struct {
	Date      time.Time        `json:"date" binding:"required"`
	Symbol    string           `json:"symbol" binding:"required,min=1,max=20"`
	Name      string           `json:"name" binding:"omitempty,max=200"`
	Side      models.TradeSide `json:"side" binding:"required,trade_side"`
	Quantity  float64          `json:"quantity" binding:"required,gt=0"`
	Price     float64          `json:"price" binding:"required,gt=0"`
	Fee       float64          `json:"fee" binding:"gte=0"`
	AssetType models.AssetType `json:"assetType" binding:"omitempty,asset_type"`
	Currency  string           `json:"currency" binding:"omitempty,iso4217"`
}

// ImportTradesRequest represents the request payload for a bulk trade import.
type ImportTradesRequest struct {
	AccountID string                  `json:"accountId" binding:"required,uuid"`
	Trades    []ImportTradeRowRequest `json:"trades" binding:"required,min=1,dive"`
}

// ListTradesQuery holds the query parameters for listing trades.
type ListTradesQuery struct {
	AccountID string `form:"accountId" binding:"omitempty,uuid"`
	pagination.PageRequest
}

// CreateTrade handles recording a new trade.
// @Summary     Create trade
// @Description Record an executed BUY or SELL trade
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTradeRequest true "Trade details"
// @Success     201 {object} models.Trade "Trade created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account or asset not found"
// @Router      /trades [post]
func (h *TradeHandler) CreateTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	trade, err := h.tradeService.CreateTrade(userID, services.CreateTradeInput{
		AccountID: req.AccountID,
		AssetID:   req.AssetID,
		Date:      req.Date,
		Side:      req.Side,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fee:       req.Fee,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, trade)
}

// GetUserTrades handles listing trades, optionally filtered by account.
// @Summary     List trades
// @Description Get the user's trades, newest first, optionally filtered by account
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       accountId query string false "Account ID filter"
// @Param       page      query int    false "Page number (default 1)"
// @Param       pageSize  query int    false "Items per page (default 50, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Trade] "Paginated trades"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /trades [get]
func (h *TradeHandler) GetUserTrades(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListTradesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.tradeService.GetUserTrades(userID, query.AccountID, query.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTradeByID handles retrieving a single trade.
// @Summary     Get trade
// @Description Get a trade by ID
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Trade ID"
// @Success     200 {object} models.Trade "Trade"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Router      /trades/{id} [get]
func (h *TradeHandler) GetTradeByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	trade, err := h.tradeService.GetTradeByID(userID, tradeID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trade)
}

// DeleteTrade handles deleting a trade.
// @Summary     Delete trade
// @Description Delete a trade; positions are recomputed from the remaining history
// @Tags        trades
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Trade ID"
// @Success     200 {object} map[string]interface{} "Deletion confirmation"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Trade not found"
// @Router      /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tradeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tradeService.DeleteTrade(userID, tradeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ImportTrades handles bulk importing of parsed trade rows.
// @Summary     Import trades
// @Description Bulk import trades into an account, resolving assets by symbol
// @Tags        trades
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ImportTradesRequest true "Import payload"
// @Success     201 {object} map[string]interface{} "Count and created trades"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /trades/import [post]
func (h *TradeHandler) ImportTrades(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ImportTradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rows := make([]services.ImportTradeRow, len(req.Trades))
	for i, r := range req.Trades {
		rows[i] = services.ImportTradeRow{
			Date:      r.Date,
			Symbol:    r.Symbol,
			Name:      r.Name,
			Side:      r.Side,
			Quantity:  r.Quantity,
			Price:     r.Price,
			Fee:       r.Fee,
			AssetType: r.AssetType,
			Currency:  r.Currency,
		}
	}

	trades, err := h.tradeService.ImportTrades(userID, req.AccountID, rows)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"count": len(trades), "trades": trades})
}
