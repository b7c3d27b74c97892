// Package holdings is the position computation engine. It replays a user's
// chronological BUY/SELL trade history into per-asset positions (running
// quantity, weighted-average cost basis, realized and unrealized P/L) and
// aggregates them per account and across the whole portfolio.
//
// Everything here is a pure function over trades already fetched by the
// service layer: no I/O, no shared state, safe to call concurrently. Results
// are recomputed from the full history on every call; nothing is cached.
//
// Over-selling is deliberately tolerated rather than rejected: a SELL from a
// zero or negative open quantity assumes the trade's own price as cost basis
// (realizing zero on that fill) and the running quantity may go negative.
// A non-positive quantity is priced like a closed position: currentPrice,
// marketValue and unrealizedPnl are null and avgBuyPrice is 0.
package holdings

import (
	"sort"

	"folio/internal/models"
)

// AssetMeta carries the display identity of an asset.
type AssetMeta struct {
	Symbol string
	Name   string
}

// Position is the derived snapshot of one asset's holdings state after
// replaying its trade history. Nullable fields use pointers so they
// serialize as JSON null; the web client renders null as "—" and 0 as a
// real zero amount, so the distinction is part of the contract.
type Position struct {
	AssetID       string   `json:"assetId"`
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	AvgBuyPrice   float64  `json:"avgBuyPrice"`
	RealizedPnl   float64  `json:"realizedPnl"`
	CurrentPrice  *float64 `json:"currentPrice"`
	MarketValue   *float64 `json:"marketValue"`
	UnrealizedPnl *float64 `json:"unrealizedPnl"`
}

// HoldingsTotals is the null-coalesced sum over a set of positions.
type HoldingsTotals struct {
	TotalQuantity    float64 `json:"totalQuantity"`
	RealizedPnl      float64 `json:"realizedPnl"`
	TotalMarketValue float64 `json:"totalMarketValue"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
}

// AccountHoldings is the per-asset position breakdown of one account.
type AccountHoldings struct {
	AccountID string         `json:"accountId"`
	Holdings  []Position     `json:"holdings"`
	Totals    HoldingsTotals `json:"totals"`
}

// SummaryTotals aggregates account- or portfolio-level value and P/L.
type SummaryTotals struct {
	TotalMarketValue float64 `json:"totalMarketValue"`
	RealizedPnl      float64 `json:"realizedPnl"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
}

// AccountSummary is one account's totals without per-asset detail.
type AccountSummary struct {
	AccountID string        `json:"accountId"`
	Name      string        `json:"name"`
	Currency  string        `json:"currency"`
	Totals    SummaryTotals `json:"totals"`
}

// PortfolioSummary is the dashboard view: per-account totals plus grand totals.
type PortfolioSummary struct {
	Accounts []AccountSummary `json:"accounts"`
	Totals   SummaryTotals    `json:"totals"`
}

// AssetPerformance is one asset's combined position across all accounts.
type AssetPerformance struct {
	AssetID          string   `json:"assetId"`
	Symbol           string   `json:"symbol"`
	Name             string   `json:"name"`
	Quantity         float64  `json:"quantity"`
	TotalCostBasis   float64  `json:"totalCostBasis"`
	TotalMarketValue *float64 `json:"totalMarketValue"`
	RealizedPnl      float64  `json:"realizedPnl"`
	UnrealizedPnl    *float64 `json:"unrealizedPnl"`
}

// sortTrades returns a copy of trades in replay order: date ascending, with
// created-at and then ID (UUIDv7, creation-ordered) breaking ties so that
// replay is deterministic across re-fetches. The sort is stable, so trades
// that tie on every key keep their incoming order.
func sortTrades(trades []models.Trade) []models.Trade {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

// groupTrades partitions trades by key, preserving both the relative order of
// trades within each group and the first-occurrence order of the keys.
func groupTrades(trades []models.Trade, key func(*models.Trade) string) ([]string, map[string][]models.Trade) {
	var keys []string
	groups := make(map[string][]models.Trade)
	for i := range trades {
		k := key(&trades[i])
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], trades[i])
	}
	return keys, groups
}

// ComputePosition replays one asset's trades into a Position snapshot.
// All trades must belong to the same asset; the slice is sorted into replay
// order before folding, so callers need not pre-sort.
//
// BUY capitalizes the fee into cost basis. SELL realizes P/L against the
// weighted-average cost of the open quantity, with the fee reducing proceeds.
func ComputePosition(trades []models.Trade, meta AssetMeta) Position {
	trades = sortTrades(trades)

	var qty, totalCost, realizedPnl, lastPrice float64

	for i := range trades {
		t := &trades[i]
		lastPrice = t.Price
		if t.Side == models.TradeSideBuy {
			qty += t.Quantity
			totalCost += t.Quantity*t.Price + t.Fee
		} else {
			avgCost := t.Price
			if qty != 0 {
				avgCost = totalCost / qty
			}
			proceeds := t.Quantity*t.Price - t.Fee
			costOfSold := avgCost * t.Quantity
			realizedPnl += proceeds - costOfSold

			qty -= t.Quantity
			totalCost -= costOfSold
		}
	}

	pos := Position{
		AssetID:     trades[0].AssetID,
		Symbol:      meta.Symbol,
		Name:        meta.Name,
		Quantity:    qty,
		RealizedPnl: realizedPnl,
	}
	if qty > 0 {
		pos.AvgBuyPrice = totalCost / qty
		currentPrice := lastPrice
		marketValue := qty * currentPrice
		unrealizedPnl := marketValue - totalCost
		pos.CurrentPrice = &currentPrice
		pos.MarketValue = &marketValue
		pos.UnrealizedPnl = &unrealizedPnl
	}
	return pos
}

// ComputeAccountHoldings groups one account's trades by asset and computes a
// Position per asset plus account totals. Market value and unrealized P/L of
// closed positions contribute 0 to the totals, not null.
func ComputeAccountHoldings(accountID string, trades []models.Trade) AccountHoldings {
	result := AccountHoldings{
		AccountID: accountID,
		Holdings:  []Position{},
	}
	if len(trades) == 0 {
		return result
	}

	assetIDs, byAsset := groupTrades(sortTrades(trades), func(t *models.Trade) string { return t.AssetID })

	for _, assetID := range assetIDs {
		group := byAsset[assetID]
		pos := ComputePosition(group, assetMetaFor(group))
		result.Holdings = append(result.Holdings, pos)

		result.Totals.TotalQuantity += pos.Quantity
		result.Totals.RealizedPnl += pos.RealizedPnl
		if pos.MarketValue != nil {
			result.Totals.TotalMarketValue += *pos.MarketValue
		}
		if pos.UnrealizedPnl != nil {
			result.Totals.UnrealizedPnl += *pos.UnrealizedPnl
		}
	}
	return result
}

// ComputePortfolioSummary groups a user's trades by account, derives each
// account's totals from its per-asset positions, and sums them into grand
// totals. Account name and currency come from the joined account record;
// trades grouped by account ID share one account by construction.
func ComputePortfolioSummary(trades []models.Trade) PortfolioSummary {
	summary := PortfolioSummary{Accounts: []AccountSummary{}}
	if len(trades) == 0 {
		return summary
	}

	accountIDs, byAccount := groupTrades(sortTrades(trades), func(t *models.Trade) string { return t.AccountID })

	for _, accountID := range accountIDs {
		group := byAccount[accountID]
		holdings := ComputeAccountHoldings(accountID, group)

		totals := SummaryTotals{
			TotalMarketValue: holdings.Totals.TotalMarketValue,
			RealizedPnl:      holdings.Totals.RealizedPnl,
			UnrealizedPnl:    holdings.Totals.UnrealizedPnl,
		}

		summary.Accounts = append(summary.Accounts, AccountSummary{
			AccountID: accountID,
			Name:      group[0].Account.Name,
			Currency:  group[0].Account.Currency,
			Totals:    totals,
		})

		summary.Totals.TotalMarketValue += totals.TotalMarketValue
		summary.Totals.RealizedPnl += totals.RealizedPnl
		summary.Totals.UnrealizedPnl += totals.UnrealizedPnl
	}
	return summary
}

// ComputeAssetPerformance merges a user's trades per asset across account
// boundaries and replays each merged timeline into one combined position.
// Holdings of the same asset in two accounts are treated as a single
// position here, unlike the per-account isolation of ComputePortfolioSummary,
// so per-asset realized P/L may legitimately differ between the two views
// when the cross-account merge interleaves trades.
func ComputeAssetPerformance(trades []models.Trade) []AssetPerformance {
	result := []AssetPerformance{}
	if len(trades) == 0 {
		return result
	}

	assetIDs, byAsset := groupTrades(sortTrades(trades), func(t *models.Trade) string { return t.AssetID })

	for _, assetID := range assetIDs {
		group := byAsset[assetID]
		pos := ComputePosition(group, assetMetaFor(group))

		totalCostBasis := 0.0
		if pos.Quantity > 0 {
			totalCostBasis = pos.AvgBuyPrice * pos.Quantity
		}

		result = append(result, AssetPerformance{
			AssetID:          assetID,
			Symbol:           pos.Symbol,
			Name:             pos.Name,
			Quantity:         pos.Quantity,
			TotalCostBasis:   totalCostBasis,
			TotalMarketValue: pos.MarketValue,
			RealizedPnl:      pos.RealizedPnl,
			UnrealizedPnl:    pos.UnrealizedPnl,
		})
	}
	return result
}

func assetMetaFor(group []models.Trade) AssetMeta {
	return AssetMeta{
		Symbol: group[0].Asset.Symbol,
		Name:   group[0].Asset.Name,
	}
}
