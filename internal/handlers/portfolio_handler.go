package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folio/internal/services"
)

// PortfolioHandler serves the derived holdings views. Responses are the
// holdings package's shapes serialized verbatim; the client distinguishes
// null from 0, so no reshaping happens here.
type PortfolioHandler struct {
	holdingsService services.HoldingsServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(holdingsService services.HoldingsServicer) *PortfolioHandler {
	return &PortfolioHandler{holdingsService: holdingsService}
}

// GetPortfolioSummary handles the dashboard summary.
// @Summary     Portfolio summary
// @Description Get per-account totals plus grand totals across the portfolio
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} holdings.PortfolioSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) GetPortfolioSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.holdingsService.GetPortfolioSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetAccountHoldings handles the per-account holdings breakdown.
// @Summary     Account holdings
// @Description Get the per-asset position breakdown of one account
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Account ID"
// @Success     200 {object} holdings.AccountHoldings "Holdings"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Router      /portfolio/accounts/{id}/holdings [get]
func (h *PortfolioHandler) GetAccountHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.holdingsService.GetAccountHoldings(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAssetPerformance handles the cross-account per-asset view.
// @Summary     Asset performance
// @Description Get one combined position per asset, merged across accounts
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} holdings.AssetPerformance "Per-asset performance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/assets/performance [get]
func (h *PortfolioHandler) GetAssetPerformance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.holdingsService.GetAssetPerformance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
