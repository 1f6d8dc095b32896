package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/ordering"
	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// MockPublisher is a mock implementation of report.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, salesReport *report.SalesReport) error {
	args := m.Called(ctx, salesReport)
	return args.Error(0)
}

func newSalesReportFixture(now time.Time) (*SalesReportService, *MockOrderReader, *MockPublisher) {
	orders := new(MockOrderReader)
	publisher := new(MockPublisher)
	service := NewSalesReportService(orders, publisher, zap.NewNop())
	service.now = func() time.Time { return now }
	return service, orders, publisher
}

func TestGenerateSalesReport(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("computes order-level totals and a stable top ranking", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		orderList := []ordering.Order{
			newTestOrder(t, now.Add(-20*time.Hour), []string{"a1a1a1a1a1a1a1a1a1a1a1a1"}, "10"),
			newTestOrder(t, now.Add(-10*time.Hour), []string{"a1a1a1a1a1a1a1a1a1a1a1a1", "b2b2b2b2b2b2b2b2b2b2b2b2"}, "20"),
			newTestOrder(t, now.Add(-1*time.Hour), []string{"b2b2b2b2b2b2b2b2b2b2b2b2"}, "30"),
		}

		orders.On("FindSince", mock.Anything, now.Add(-24*time.Hour)).Return(orderList, nil)

		var published *report.SalesReport
		publisher.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).(*report.SalesReport)
		}).Return(nil)

		result, err := service.Generate(context.Background())
		require.NoError(t, err)

		// Each order's total counts once, regardless of line count
		assert.Equal(t, float64(60), result.TotalSales)
		assert.Equal(t, 3, result.TotalOrders)
		assert.Equal(t, float64(20), result.AvgOrderValue)

		require.Len(t, result.TopProducts, 2)
		assert.Equal(t, "a1a1a1a1a1a1a1a1a1a1a1a1", result.TopProducts[0].ProductID)
		assert.Equal(t, 2, result.TopProducts[0].Count)
		assert.Equal(t, "b2b2b2b2b2b2b2b2b2b2b2b2", result.TopProducts[1].ProductID)
		assert.Equal(t, 2, result.TopProducts[1].Count)

		require.NotNil(t, published)
		assert.Equal(t, 3, published.TotalOrders)
		assert.Equal(t, now, published.GeneratedAt)
		assert.Equal(t, now.Add(-24*time.Hour), published.WindowStart)
	})

	t.Run("counts duplicate lines within one order", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		orderList := []ordering.Order{
			newTestOrder(t, now.Add(-2*time.Hour), []string{"a1a1a1a1a1a1a1a1a1a1a1a1", "a1a1a1a1a1a1a1a1a1a1a1a1", "b2b2b2b2b2b2b2b2b2b2b2b2"}, "15"),
		}
		orders.On("FindSince", mock.Anything, mock.Anything).Return(orderList, nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, result.TopProducts, 2)
		assert.Equal(t, 2, result.TopProducts[0].Count)
		assert.Equal(t, 1, result.TopProducts[1].Count)
	})

	t.Run("keeps only the top five products", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		ids := []string{
			"111111111111111111111111",
			"222222222222222222222222",
			"333333333333333333333333",
			"444444444444444444444444",
			"555555555555555555555555",
			"666666666666666666666666",
		}
		var lines []string
		// id i appears i+1 times so the ranking is fully determined
		for i, id := range ids {
			for n := 0; n <= i; n++ {
				lines = append(lines, id)
			}
		}
		orderList := []ordering.Order{newTestOrder(t, now.Add(-3*time.Hour), lines, "99")}

		orders.On("FindSince", mock.Anything, mock.Anything).Return(orderList, nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		result, err := service.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, result.TopProducts, 5)
		assert.Equal(t, ids[5], result.TopProducts[0].ProductID)
		assert.Equal(t, 6, result.TopProducts[0].Count)
		assert.Equal(t, ids[1], result.TopProducts[4].ProductID)
	})

	t.Run("publishes an empty report for an empty window", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		orders.On("FindSince", mock.Anything, mock.Anything).Return([]ordering.Order{}, nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(r *report.SalesReport) bool {
			return r.TotalOrders == 0 && r.TotalSales.IsZero() && r.AvgOrderValue.IsZero() && len(r.TopProducts) == 0
		})).Return(nil)

		result, err := service.Generate(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, result.TotalOrders)
		assert.Equal(t, float64(0), result.TotalSales)
		assert.Equal(t, float64(0), result.AvgOrderValue)
		assert.Empty(t, result.TopProducts)
		publisher.AssertExpectations(t)
	})

	t.Run("surfaces a store failure as a dependency failure", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		orders.On("FindSince", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := service.Generate(context.Background())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DEPENDENCY_FAILURE", domainErr.Code)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("surfaces a publish failure without retrying", func(t *testing.T) {
		service, orders, publisher := newSalesReportFixture(now)

		orders.On("FindSince", mock.Anything, mock.Anything).Return([]ordering.Order{
			newTestOrder(t, now.Add(-time.Hour), []string{"a1a1a1a1a1a1a1a1a1a1a1a1"}, "10"),
		}, nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel down")).Once()

		_, err := service.Generate(context.Background())
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DEPENDENCY_FAILURE", domainErr.Code)
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})
}
