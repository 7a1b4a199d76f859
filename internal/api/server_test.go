package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/database"
	"tally/internal/insights"
	"tally/internal/models"
	"tally/internal/planner"
)

// stubGenerator satisfies insights.Generator without a network call.
type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) GenerateInsight(ctx context.Context, system, prompt string) (string, error) {
	return g.reply, g.err
}

func newTestServer(t *testing.T, gen insights.Generator) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	repo := database.NewRepository(db)
	pl := planner.New(repo)
	assistant := insights.NewAssistant(gen, repo)
	return NewServer(db, pl, assistant, ""), db
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, nil)
	w := doJSON(t, s, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
}

func TestMaterialCRUD(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doJSON(t, s, "POST", "/api/materials", gin.H{
		"name": "Gildan T-Shirt - Red / M", "color": "red", "unit": "24 PCS", "required": 24,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Material
	decode(t, w, &created)
	assert.Equal(t, 0, created.Quantity, "omitted quantity stored as zero")

	w = doJSON(t, s, "PUT", "/api/materials/1", gin.H{"quantity": 46})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Material
	decode(t, w, &updated)
	assert.Equal(t, 46, updated.Quantity)
	assert.Equal(t, "Gildan T-Shirt - Red / M", updated.Name, "partial update keeps other fields")

	w = doJSON(t, s, "GET", "/api/materials", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Material
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = doJSON(t, s, "DELETE", "/api/materials/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, "GET", "/api/materials/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaterialRejectsNegativeQuantity(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doJSON(t, s, "POST", "/api/materials", gin.H{
		"name": "Fabric", "color": "red", "unit": "PCS", "quantity": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seedBuildScenario(t *testing.T, s *Server, db *gorm.DB) {
	t.Helper()

	materials := []models.Material{
		{Name: "Gildan T-Shirt - Red / M", Color: "red", Quantity: 13, Unit: "24 PCS", Required: 24},
		{Name: "Custom Print Design", Color: "blue", Quantity: 100, Unit: "1 PCS", Required: 1},
	}
	for i := range materials {
		require.NoError(t, db.Create(&materials[i]).Error)
	}

	product := models.Product{Name: "Custom T-Shirt - Red / M", SKU: "TSH-RED-M-001", Color: "red", Price: 25.99}
	require.NoError(t, db.Create(&product).Error)

	w := doJSON(t, s, "PUT", "/api/products/1/bom", gin.H{
		"items": []gin.H{
			{"material_id": 1, "quantity": 1},
			{"material_id": 2, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProductBOMAndCanBuild(t *testing.T) {
	s, db := newTestServer(t, nil)
	seedBuildScenario(t, s, db)

	w := doJSON(t, s, "GET", "/api/products/1/bom", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bom []models.BOMItem
	decode(t, w, &bom)
	require.Len(t, bom, 2)
	assert.Equal(t, "Gildan T-Shirt - Red / M", bom[0].MaterialName)

	w = doJSON(t, s, "POST", "/api/products/1/can-build", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	decode(t, w, &product)
	assert.Equal(t, 13, product.CanBuild, "min over BOM links of floor(stock/qty)")
}

func TestProductBOMRejectsZeroQuantity(t *testing.T) {
	s, db := newTestServer(t, nil)
	require.NoError(t, db.Create(&models.Material{Name: "Fabric", Color: "red", Quantity: 10, Unit: "PCS"}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Shirt", SKU: "TSH-001", Color: "red", Price: 25.99}).Error)

	w := doJSON(t, s, "PUT", "/api/products/1/bom", gin.H{
		"items": []gin.H{{"material_id": 1, "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderLifecycleAndShortages(t *testing.T) {
	s, db := newTestServer(t, nil)
	seedBuildScenario(t, s, db)

	w := doJSON(t, s, "POST", "/api/orders", gin.H{
		"customer":         "Alice Brown",
		"email":            "alice@example.com",
		"shipping_address": "123 Main St",
		"items": []gin.H{
			{"product_id": 1, "quantity": 24},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	decode(t, w, &order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "Queued", order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Custom T-Shirt - Red / M", order.Items[0].ProductName, "name snapshotted from catalog")
	assert.InDelta(t, 24*25.99, order.Total, 0.01, "total computed from items")

	w = doJSON(t, s, "GET", "/api/orders/"+order.ID+"/shortages", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Shortages []models.Shortage `json:"shortages"`
		Count     int               `json:"count"`
	}
	decode(t, w, &result)
	require.Equal(t, 1, result.Count, "only the red blanks run short, prints are covered")
	assert.Equal(t, 24, result.Shortages[0].Needed)
	assert.Equal(t, 13, result.Shortages[0].Available)
	assert.Equal(t, 11, result.Shortages[0].Short)

	// Shortage rows are recorded for the order.
	var recorded int64
	db.Model(&models.Shortage{}).Where("order_id = ?", order.ID).Count(&recorded)
	assert.EqualValues(t, 1, recorded)

	w = doJSON(t, s, "PUT", "/api/orders/"+order.ID, gin.H{"status": "Shipped", "tracking_number": "1Z999"})
	require.Equal(t, http.StatusOK, w.Code)
	var shipped models.Order
	decode(t, w, &shipped)
	assert.Equal(t, "Shipped", shipped.Status)
	assert.Equal(t, "1Z999", shipped.TrackingNumber)
}

func TestOrderNotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)
	w := doJSON(t, s, "GET", "/api/orders/ORD-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, s, "GET", "/api/orders/ORD-404/shortages", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueEntrySnapshots(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doJSON(t, s, "POST", "/api/order-queue", gin.H{
		"customer": "Mike Wilson", "email": "mike@example.com", "total": 129.95,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var entry models.QueueEntry
	decode(t, w, &entry)
	assert.True(t, entry.CanFulfill, "fulfillable until marked otherwise")

	w = doJSON(t, s, "PUT", "/api/order-queue/"+entry.ID, gin.H{
		"can_fulfill":     false,
		"shortage_reason": "Insufficient Red / M inventory",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entry)
	assert.False(t, entry.CanFulfill)
	require.NotNil(t, entry.ShortageReason)
	assert.Equal(t, "Insufficient Red / M inventory", *entry.ShortageReason)
}

func TestIntegrationToggle(t *testing.T) {
	s, _ := newTestServer(t, nil)

	w := doJSON(t, s, "POST", "/api/integrations", gin.H{
		"name": "slack", "display_name": "Slack",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, "POST", "/api/integrations/1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var integration models.Integration
	decode(t, w, &integration)
	assert.True(t, integration.Enabled)

	w = doJSON(t, s, "POST", "/api/integrations/1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &integration)
	assert.False(t, integration.Enabled)
}

func TestSmartAlertsEndpoint(t *testing.T) {
	s, db := newTestServer(t, nil)
	// One material low enough to alert once order volume exists. Fifteen
	// recent line items estimate 30 units over the window, one per day,
	// so two units of stock means two days remaining.
	require.NoError(t, db.Create(&models.Material{Name: "Red / M", Color: "red", Quantity: 2, Unit: "PCS", Required: 24}).Error)
	order := models.Order{ID: "ORD-001", Customer: "A", Email: "a@example.com", ShippingAddress: "x", OrderDate: time.Now()}
	require.NoError(t, db.Create(&order).Error)
	for i := 0; i < 15; i++ {
		require.NoError(t, db.Create(&models.OrderItem{OrderID: "ORD-001", ProductID: 1, ProductName: "Shirt", Quantity: 1, Price: 25.99}).Error)
	}

	w := doJSON(t, s, "GET", "/api/ai/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Alerts []models.Alert `json:"alerts"`
		Count  int            `json:"count"`
	}
	decode(t, w, &body)
	require.Equal(t, 2, body.Count, "critical plus overlapping reorder")
	assert.Equal(t, models.AlertCritical, body.Alerts[0].Type)
	assert.Equal(t, models.AlertReorder, body.Alerts[1].Type)
}

func TestChatEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{reply: "Buy more blanks."})

	w := doJSON(t, s, "POST", "/api/ai/chat", gin.H{"message": "What should I restock?"})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "Buy more blanks.", body["response"])
	assert.Equal(t, "What should I restock?", body["query"])
}

func TestChatEndpointRequiresMessage(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{reply: "unused"})
	w := doJSON(t, s, "POST", "/api/ai/chat", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpointDegradesOnProviderFailure(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{err: errors.New("rate limited")})

	w := doJSON(t, s, "POST", "/api/ai/chat", gin.H{"message": "hello"})
	require.Equal(t, http.StatusOK, w.Code, "LLM failure must not become a server error")

	var body map[string]string
	decode(t, w, &body)
	assert.Contains(t, body["response"], "I apologize")
}

func TestDashboardAggregation(t *testing.T) {
	s, db := newTestServer(t, nil)
	seedBuildScenario(t, s, db)
	require.NoError(t, db.Create(&models.Order{
		ID: "ORD-001", Customer: "A", Email: "a@example.com", Status: "Shipped", ShippingAddress: "x", OrderDate: time.Now(),
	}).Error)

	w := doJSON(t, s, "GET", "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	decode(t, w, &body)
	assert.EqualValues(t, 2, body["total_materials"])
	assert.EqualValues(t, 1, body["total_products"])
	assert.EqualValues(t, 1, body["total_orders"])
}
