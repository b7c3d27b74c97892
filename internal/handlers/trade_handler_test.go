package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"folio/internal/models"
	"folio/internal/pagination"
	"folio/internal/services"
)

// mockTradeService implements services.TradeServicer for handler tests.
type mockTradeService struct {
	createTradeFunc   func(userID string, input services.CreateTradeInput) (*models.Trade, error)
	getUserTradesFunc func(userID, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	getTradeByIDFunc  func(userID, tradeID string) (*models.Trade, error)
	deleteTradeFunc   func(userID, tradeID string) error
	importTradesFunc  func(userID, accountID string, rows []services.ImportTradeRow) ([]models.Trade, error)
}

var _ services.TradeServicer = (*mockTradeService)(nil)

func (m *mockTradeService) CreateTrade(userID string, input services.CreateTradeInput) (*models.Trade, error) {
	return m.createTradeFunc(userID, input)
}

func (m *mockTradeService) GetUserTrades(userID, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
	return m.getUserTradesFunc(userID, accountID, page)
}

func (m *mockTradeService) GetTradeByID(userID, tradeID string) (*models.Trade, error) {
	return m.getTradeByIDFunc(userID, tradeID)
}

func (m *mockTradeService) DeleteTrade(userID, tradeID string) error {
	return m.deleteTradeFunc(userID, tradeID)
}

func (m *mockTradeService) ImportTrades(userID, accountID string, rows []services.ImportTradeRow) ([]models.Trade, error) {
	return m.importTradesFunc(userID, accountID, rows)
}

func tradeRouter(svc services.TradeServicer) *gin.Engine {
	h := NewTradeHandler(svc)
	router := gin.New()
	auth := injectUserID(testUserID)
	router.POST("/trades", auth, h.CreateTrade)
	router.GET("/trades", auth, h.GetUserTrades)
	router.DELETE("/trades/:id", auth, h.DeleteTrade)
	router.POST("/trades/import", auth, h.ImportTrades)
	return router
}

func validTradeBody() gin.H {
	return gin.H{
		"accountId": testAccountID,
		"assetId":   testAssetID,
		"date":      "2024-03-01T00:00:00Z",
		"side":      "BUY",
		"quantity":  10,
		"price":     150.5,
		"fee":       1.25,
	}
}

func TestCreateTradeHandler(t *testing.T) {
	svc := &mockTradeService{
		createTradeFunc: func(userID string, input services.CreateTradeInput) (*models.Trade, error) {
			if userID != testUserID {
				t.Errorf("expected user %s, got %s", testUserID, userID)
			}
			if input.Side != models.TradeSideBuy || input.Quantity != 10 {
				t.Errorf("unexpected input: %+v", input)
			}
			trade := &models.Trade{
				UserID:    userID,
				AccountID: input.AccountID,
				AssetID:   input.AssetID,
				Date:      input.Date,
				Side:      input.Side,
				Quantity:  input.Quantity,
				Price:     input.Price,
				Fee:       input.Fee,
			}
			trade.ID = "018f6d82-7a3e-7cc0-b1a5-2f6a4c9e1d2e"
			return trade, nil
		},
	}

	w := doRequest(tradeRouter(svc), http.MethodPost, "/trades", validTradeBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	body := parseJSON(t, w)
	if body["side"] != "BUY" || body["quantity"] != 10.0 {
		t.Errorf("unexpected response payload: %v", body)
	}
}

func TestCreateTradeHandlerValidation(t *testing.T) {
	svc := &mockTradeService{
		createTradeFunc: func(userID string, input services.CreateTradeInput) (*models.Trade, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	router := tradeRouter(svc)

	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"bad account id", func(b gin.H) { b["accountId"] = "nope" }},
		{"bad side", func(b gin.H) { b["side"] = "HOLD" }},
		{"zero quantity", func(b gin.H) { b["quantity"] = 0 }},
		{"negative price", func(b gin.H) { b["price"] = -5 }},
		{"negative fee", func(b gin.H) { b["fee"] = -1 }},
		{"missing date", func(b gin.H) { delete(b, "date") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validTradeBody()
			tt.mutate(body)
			w := doRequest(router, http.MethodPost, "/trades", body)
			assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
		})
	}
}

func TestGetUserTradesHandler(t *testing.T) {
	svc := &mockTradeService{
		getUserTradesFunc: func(userID, accountID string, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error) {
			if accountID != testAccountID {
				t.Errorf("expected account filter %s, got %q", testAccountID, accountID)
			}
			if page.Page != 2 || page.PageSize != 10 {
				t.Errorf("expected page 2 size 10, got %+v", page)
			}
			resp := pagination.NewPageResponse([]models.Trade{}, 2, 10, 0)
			return &resp, nil
		},
	}

	w := doRequest(tradeRouter(svc), http.MethodGet,
		"/trades?accountId="+testAccountID+"&page=2&pageSize=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	body := parseJSON(t, w)
	if body["page"] != 2.0 || body["pageSize"] != 10.0 {
		t.Errorf("unexpected pagination metadata: %v", body)
	}
}

func TestDeleteTradeHandler(t *testing.T) {
	called := false
	svc := &mockTradeService{
		deleteTradeFunc: func(userID, tradeID string) error {
			called = true
			return nil
		},
	}

	w := doRequest(tradeRouter(svc), http.MethodDelete, "/trades/"+testAssetID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Error("expected the service delete to be called")
	}
}

func TestImportTradesHandler(t *testing.T) {
	svc := &mockTradeService{
		importTradesFunc: func(userID, accountID string, rows []services.ImportTradeRow) ([]models.Trade, error) {
			if len(rows) != 2 {
				t.Fatalf("expected 2 rows, got %d", len(rows))
			}
			if rows[0].Symbol != "AAPL" || rows[1].Side != models.TradeSideSell {
				t.Errorf("unexpected rows: %+v", rows)
			}
			trades := make([]models.Trade, len(rows))
			for i := range trades {
				trades[i].Date = rows[i].Date
			}
			return trades, nil
		},
	}

	w := doRequest(tradeRouter(svc), http.MethodPost, "/trades/import", gin.H{
		"accountId": testAccountID,
		"trades": []gin.H{
			{"date": "2024-01-05T00:00:00Z", "symbol": "AAPL", "side": "BUY", "quantity": 10, "price": 100, "fee": 1},
			{"date": "2024-01-06T00:00:00Z", "symbol": "AAPL", "side": "SELL", "quantity": 4, "price": 120},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", w.Code, w.Body.String())
	}

	body := parseJSON(t, w)
	if body["count"] != 2.0 {
		t.Errorf("expected count 2, got %v", body["count"])
	}
}

func TestImportTradesHandlerValidation(t *testing.T) {
	svc := &mockTradeService{
		importTradesFunc: func(userID, accountID string, rows []services.ImportTradeRow) ([]models.Trade, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	}
	router := tradeRouter(svc)

	// Empty rows.
	w := doRequest(router, http.MethodPost, "/trades/import", gin.H{
		"accountId": testAccountID,
		"trades":    []gin.H{},
	})
	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")

	// Bad row inside the batch.
	w = doRequest(router, http.MethodPost, "/trades/import", gin.H{
		"accountId": testAccountID,
		"trades": []gin.H{
			{"date": "2024-01-05T00:00:00Z", "symbol": "AAPL", "side": "BUY", "quantity": 10, "price": 100, "currency": "NOPE"},
		},
	})
	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_INPUT")
}
