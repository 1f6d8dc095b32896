package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/catalog"
	"github.com/backoffice/server/internal/domain/ordering"
	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// MockOrderReader is a mock implementation of report.OrderReader
type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) FindByPredicate(ctx context.Context, predicate report.OrderPredicate) ([]ordering.Order, error) {
	args := m.Called(ctx, predicate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderReader) FindSince(ctx context.Context, since time.Time) ([]ordering.Order, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test helpers

func newTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T, date time.Time, productIDs []string, total string) ordering.Order {
	t.Helper()
	amount, err := decimal.NewFromString(total)
	require.NoError(t, err)
	order, err := ordering.NewOrder(date, productIDs, amount)
	require.NoError(t, err)
	return *order
}

func newDashboardFixture() (*DashboardService, *MockOrderReader, *MockProductRepository) {
	orders := new(MockOrderReader)
	products := new(MockProductRepository)
	service := NewDashboardService(orders, products, zap.NewNop())
	return service, orders, products
}

func TestGetDashboardEmptyStore(t *testing.T) {
	service, orders, products := newDashboardFixture()
	orders.On("FindByPredicate", mock.Anything, report.OrderPredicate{}).Return([]ordering.Order{}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityDaily})
	require.NoError(t, err)

	assert.Empty(t, result.ChartData)
	assert.Equal(t, 0, result.KPIs.TotalOrders)
	assert.Equal(t, float64(0), result.KPIs.TotalRevenue)
	assert.Equal(t, float64(0), result.KPIs.AverageOrderValue)
	assert.Equal(t, 0, result.KPIs.UniqueProducts)
	assert.Equal(t, 0, result.KPIs.TotalPeriods)
	assert.Nil(t, result.KPIs.BestPeriod)
	products.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestGetDashboardSingleOrderTwoLines(t *testing.T) {
	// One order with two product lines: revenue is summed per line, so the
	// order's total appears twice in the bucket
	service, orders, products := newDashboardFixture()

	p1 := newTestProduct(t, "Keyboard")
	p2 := newTestProduct(t, "Mouse")
	day := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	order := newTestOrder(t, day, []string{p1.ID.Hex(), p2.ID.Hex()}, "100")

	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return([]ordering.Order{order}, nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*p1, *p2}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityDaily})
	require.NoError(t, err)

	require.Len(t, result.ChartData, 1)
	bucket := result.ChartData[0]
	assert.Equal(t, "2024-01-01", bucket.Period.Label)
	assert.Equal(t, 2, bucket.TotalOrders)
	assert.Equal(t, float64(200), bucket.TotalRevenue)
	assert.Equal(t, float64(100), bucket.AverageOrderValue)
	assert.Equal(t, []string{"Keyboard", "Mouse"}, bucket.Products)
	assert.Equal(t, []string{p1.ID.Hex(), p2.ID.Hex()}, bucket.UniqueProductIDs)

	assert.Equal(t, 2, result.KPIs.TotalOrders)
	assert.Equal(t, float64(200), result.KPIs.TotalRevenue)
	assert.Equal(t, float64(100), result.KPIs.AverageOrderValue)
	assert.Equal(t, 2, result.KPIs.UniqueProducts)
	assert.Equal(t, 1, result.KPIs.TotalPeriods)
	require.NotNil(t, result.KPIs.BestPeriod)
	assert.Equal(t, "2024-01-01", result.KPIs.BestPeriod.Period.Label)
}

func TestGetDashboardWeeklyGroupsSameWeek(t *testing.T) {
	service, orders, products := newDashboardFixture()

	p1 := newTestProduct(t, "Keyboard")
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC)
	orderList := []ordering.Order{
		newTestOrder(t, monday, []string{p1.ID.Hex()}, "50"),
		newTestOrder(t, wednesday, []string{p1.ID.Hex()}, "70"),
	}

	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return(orderList, nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*p1}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityWeekly})
	require.NoError(t, err)

	require.Len(t, result.ChartData, 1)
	bucket := result.ChartData[0]
	assert.Equal(t, "2024-W03", bucket.Period.Label)
	assert.Equal(t, 2024, bucket.Period.Year)
	assert.Equal(t, 3, bucket.Period.Week)
	assert.Equal(t, "2024-01-15", bucket.Period.Date)
	assert.Equal(t, 2, bucket.TotalOrders)
	assert.Equal(t, float64(120), bucket.TotalRevenue)
	assert.Equal(t, float64(60), bucket.AverageOrderValue)
}

func TestGetDashboardProductFilter(t *testing.T) {
	t.Run("builds an equality predicate from a valid id", func(t *testing.T) {
		service, orders, _ := newDashboardFixture()
		productID := primitive.NewObjectID()

		orders.On("FindByPredicate", mock.Anything, mock.MatchedBy(func(p report.OrderPredicate) bool {
			return p.ProductID != nil && *p.ProductID == productID
		})).Return([]ordering.Order{}, nil)

		result, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			ProductID:   productID.Hex(),
			Granularity: report.GranularityDaily,
		})
		require.NoError(t, err)
		assert.Empty(t, result.ChartData)
		orders.AssertExpectations(t)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		service, orders, _ := newDashboardFixture()

		_, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			ProductID:   "not-a-hex-id",
			Granularity: report.GranularityDaily,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT_ID", domainErr.Code)
		orders.AssertNotCalled(t, "FindByPredicate", mock.Anything, mock.Anything)
	})
}

func TestGetDashboardCategoryFilter(t *testing.T) {
	t.Run("resolves the category to its member products", func(t *testing.T) {
		service, orders, products := newDashboardFixture()
		categoryID := primitive.NewObjectID()
		p1 := newTestProduct(t, "Keyboard")
		p2 := newTestProduct(t, "Mouse")

		products.On("FindByCategory", mock.Anything, categoryID).Return([]catalog.Product{*p1, *p2}, nil)
		orders.On("FindByPredicate", mock.Anything, mock.MatchedBy(func(p report.OrderPredicate) bool {
			return len(p.ProductIDs) == 2 && p.ProductIDs[0] == p1.ID && p.ProductIDs[1] == p2.ID
		})).Return([]ordering.Order{}, nil)

		result, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			CategoryID:  categoryID.Hex(),
			Granularity: report.GranularityDaily,
		})
		require.NoError(t, err)
		assert.Empty(t, result.ChartData)
		orders.AssertExpectations(t)
	})

	t.Run("short-circuits when the category has no products", func(t *testing.T) {
		service, orders, products := newDashboardFixture()
		categoryID := primitive.NewObjectID()

		products.On("FindByCategory", mock.Anything, categoryID).Return([]catalog.Product{}, nil)

		result, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			CategoryID:  categoryID.Hex(),
			Granularity: report.GranularityDaily,
		})
		require.NoError(t, err)

		assert.Empty(t, result.ChartData)
		assert.Equal(t, 0, result.KPIs.TotalPeriods)
		assert.Nil(t, result.KPIs.BestPeriod)
		orders.AssertNotCalled(t, "FindByPredicate", mock.Anything, mock.Anything)
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		service, _, products := newDashboardFixture()

		_, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			CategoryID:  "zzz",
			Granularity: report.GranularityDaily,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CATEGORY_ID", domainErr.Code)
		products.AssertNotCalled(t, "FindByCategory", mock.Anything, mock.Anything)
	})
}

func TestGetDashboardDateRange(t *testing.T) {
	t.Run("applies the range when both bounds are set", func(t *testing.T) {
		service, orders, _ := newDashboardFixture()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		orders.On("FindByPredicate", mock.Anything, mock.MatchedBy(func(p report.OrderPredicate) bool {
			return p.StartDate != nil && p.EndDate != nil && p.StartDate.Equal(start) && p.EndDate.Equal(end)
		})).Return([]ordering.Order{}, nil)

		_, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			StartDate:   &start,
			EndDate:     &end,
			Granularity: report.GranularityDaily,
		})
		require.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("ignores a lone start bound", func(t *testing.T) {
		service, orders, _ := newDashboardFixture()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		orders.On("FindByPredicate", mock.Anything, mock.MatchedBy(func(p report.OrderPredicate) bool {
			return p.StartDate == nil && p.EndDate == nil
		})).Return([]ordering.Order{}, nil)

		_, err := service.GetDashboard(context.Background(), report.DashboardFilter{
			StartDate:   &start,
			Granularity: report.GranularityDaily,
		})
		require.NoError(t, err)
		orders.AssertExpectations(t)
	})
}

func TestGetDashboardDropsBadLines(t *testing.T) {
	// Malformed line ids fail the shape check; well-formed ids without a
	// matching product are dropped by the join
	service, orders, products := newDashboardFixture()

	p1 := newTestProduct(t, "Keyboard")
	dangling := primitive.NewObjectID().Hex()
	day := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	order := newTestOrder(t, day, []string{p1.ID.Hex(), "garbage", dangling}, "30")

	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return([]ordering.Order{order}, nil)
	products.On("FindByIDs", mock.Anything, mock.MatchedBy(func(ids []primitive.ObjectID) bool {
		// The malformed id never reaches the join fetch
		return len(ids) == 2
	})).Return([]catalog.Product{*p1}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityDaily})
	require.NoError(t, err)

	require.Len(t, result.ChartData, 1)
	bucket := result.ChartData[0]
	assert.Equal(t, 1, bucket.TotalOrders)
	assert.Equal(t, float64(30), bucket.TotalRevenue)
	assert.Equal(t, []string{"Keyboard"}, bucket.Products)
}

func TestGetDashboardSortsAndSummarizes(t *testing.T) {
	service, orders, products := newDashboardFixture()

	p1 := newTestProduct(t, "Keyboard")
	p2 := newTestProduct(t, "Mouse")
	orderList := []ordering.Order{
		newTestOrder(t, time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), []string{p2.ID.Hex()}, "80.25"),
		newTestOrder(t, time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC), []string{p1.ID.Hex()}, "10.555"),
		newTestOrder(t, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), []string{p1.ID.Hex()}, "10.555"),
	}

	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return(orderList, nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*p1, *p2}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityDaily})
	require.NoError(t, err)

	require.Len(t, result.ChartData, 2)
	// Ascending by representative date
	assert.Equal(t, "2024-01-05", result.ChartData[0].Period.Label)
	assert.Equal(t, "2024-02-10", result.ChartData[1].Period.Label)

	// Rounded to 2 decimals: 10.555 + 10.555 = 21.11
	assert.Equal(t, 21.11, result.ChartData[0].TotalRevenue)
	assert.Equal(t, 10.56, result.ChartData[0].AverageOrderValue)

	// Sum invariant over buckets
	total := 0
	for _, bucket := range result.ChartData {
		total += bucket.TotalOrders
	}
	assert.Equal(t, result.KPIs.TotalOrders, total)

	// 21.11 + 80.25 = 101.36
	assert.Equal(t, 101.36, result.KPIs.TotalRevenue)
	assert.Equal(t, 33.79, result.KPIs.AverageOrderValue)
	assert.Equal(t, 2, result.KPIs.UniqueProducts)
	require.NotNil(t, result.KPIs.BestPeriod)
	assert.Equal(t, "2024-02-10", result.KPIs.BestPeriod.Period.Label)
}

func TestGetDashboardBestPeriodTieKeepsFirst(t *testing.T) {
	service, orders, products := newDashboardFixture()

	p1 := newTestProduct(t, "Keyboard")
	orderList := []ordering.Order{
		newTestOrder(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), []string{p1.ID.Hex()}, "40"),
		newTestOrder(t, time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC), []string{p1.ID.Hex()}, "40"),
	}

	orders.On("FindByPredicate", mock.Anything, mock.Anything).Return(orderList, nil)
	products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*p1}, nil)

	result, err := service.GetDashboard(context.Background(), report.DashboardFilter{Granularity: report.GranularityDaily})
	require.NoError(t, err)

	require.NotNil(t, result.KPIs.BestPeriod)
	assert.Equal(t, "2024-01-01", result.KPIs.BestPeriod.Period.Label)
}
