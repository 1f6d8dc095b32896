package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	reportapp "github.com/backoffice/server/internal/application/report"
	"github.com/backoffice/server/internal/domain/catalog"
	"github.com/backoffice/server/internal/domain/ordering"
	domainreport "github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
	"github.com/backoffice/server/internal/interfaces/http/dto"
)

type stubOrderReader struct {
	mock.Mock
}

func (m *stubOrderReader) FindByPredicate(ctx context.Context, predicate domainreport.OrderPredicate) ([]ordering.Order, error) {
	args := m.Called(ctx, predicate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *stubOrderReader) FindSince(ctx context.Context, since time.Time) ([]ordering.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

type stubProductRepository struct {
	mock.Mock
}

func (m *stubProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *stubProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *stubProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *stubProductRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *stubProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *stubProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *stubProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func setupDashboardRouter(orders *stubOrderReader, products *stubProductRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := reportapp.NewDashboardService(orders, products, zap.NewNop())
	handler := NewDashboardHandler(service)

	engine := gin.New()
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)
	return engine
}

func performRequest(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDashboardEmptyStore(t *testing.T) {
	orders := new(stubOrderReader)
	products := new(stubProductRepository)
	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return([]ordering.Order{}, nil)

	engine := setupDashboardRouter(orders, products)
	w := performRequest(engine, http.MethodGet, "/api/v1/dashboard")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestDashboardRejectsUnknownPeriod(t *testing.T) {
	orders := new(stubOrderReader)
	products := new(stubProductRepository)

	engine := setupDashboardRouter(orders, products)
	w := performRequest(engine, http.MethodGet, "/api/v1/dashboard?period=hourly")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_GRANULARITY", resp.Error.Code)
	orders.AssertNotCalled(t, "FindByPredicate", mock.Anything, mock.Anything)
}

func TestDashboardRejectsMalformedProductID(t *testing.T) {
	orders := new(stubOrderReader)
	products := new(stubProductRepository)

	engine := setupDashboardRouter(orders, products)
	w := performRequest(engine, http.MethodGet, "/api/v1/dashboard?product=not-hex")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PRODUCT_ID", resp.Error.Code)
}

func TestDashboardRejectsMalformedDate(t *testing.T) {
	orders := new(stubOrderReader)
	products := new(stubProductRepository)

	engine := setupDashboardRouter(orders, products)
	w := performRequest(engine, http.MethodGet, "/api/v1/dashboard?start=15-01-2024&end=2024-01-31")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_DATE_RANGE", resp.Error.Code)
}
