package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// ReportWindow is the trailing lookback window of the sales report
const ReportWindow = 24 * time.Hour

// TopProductsLimit is the size of the report's product ranking
const TopProductsLimit = 5

// SalesReportService generates the trailing-window sales report and hands
// it to the notification channel.
//
// Unlike the dashboard aggregation, totals here are order-level: each
// order's total is counted exactly once no matter how many product lines
// it carries. The two semantics are intentionally different.
type SalesReportService struct {
	orders    report.OrderReader
	publisher report.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewSalesReportService creates a new SalesReportService
func NewSalesReportService(orders report.OrderReader, publisher report.Publisher, logger *zap.Logger) *SalesReportService {
	return &SalesReportService{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ProductSalesResponse is one ranking entry of the report payload
type ProductSalesResponse struct {
	ProductID string `json:"productId"`
	Count     int    `json:"count"`
}

// SalesReportResponse is the report payload returned to the caller
type SalesReportResponse struct {
	GeneratedAt   time.Time              `json:"generatedAt"`
	WindowStart   time.Time              `json:"windowStart"`
	TotalSales    float64                `json:"totalSales"`
	TotalOrders   int                    `json:"totalOrders"`
	AvgOrderValue float64                `json:"avgOrderValue"`
	TopProducts   []ProductSalesResponse `json:"topProducts"`
}

// Generate computes the report over the trailing window, publishes it and
// returns it. Store and publish failures are logged and surfaced as
// dependency failures; there is no retry here — retries belong to the
// invoking scheduler.
func (s *SalesReportService) Generate(ctx context.Context) (*SalesReportResponse, error) {
	generatedAt := s.now()
	windowStart := generatedAt.Add(-ReportWindow)

	orders, err := s.orders.FindSince(ctx, windowStart)
	if err != nil {
		s.logger.Error("sales report order fetch failed", zap.Error(err))
		return nil, shared.NewDomainError("DEPENDENCY_FAILURE", "Order store unavailable")
	}

	totalSales := decimal.Zero
	counts := make(map[string]int)
	var firstSeen []string
	for i := range orders {
		order := &orders[i]
		totalSales = totalSales.Add(order.Total)
		for _, productID := range order.ProductIDs {
			if _, ok := counts[productID]; !ok {
				firstSeen = append(firstSeen, productID)
			}
			counts[productID]++
		}
	}

	avgOrderValue := decimal.Zero
	if len(orders) > 0 {
		avgOrderValue = totalSales.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	// Rank by occurrence count; a stable sort over first-seen order keeps
	// ties deterministic
	ranking := make([]report.ProductSales, 0, len(firstSeen))
	for _, productID := range firstSeen {
		ranking = append(ranking, report.ProductSales{ProductID: productID, Count: counts[productID]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > TopProductsLimit {
		ranking = ranking[:TopProductsLimit]
	}

	salesReport := &report.SalesReport{
		GeneratedAt:   generatedAt,
		WindowStart:   windowStart,
		TotalSales:    totalSales.Round(2),
		TotalOrders:   len(orders),
		AvgOrderValue: avgOrderValue,
		TopProducts:   ranking,
	}

	if err := s.publisher.Publish(ctx, salesReport); err != nil {
		s.logger.Error("sales report publish failed", zap.Error(err))
		return nil, shared.NewDomainError("DEPENDENCY_FAILURE", "Report notification channel unavailable")
	}

	s.logger.Info("sales report generated",
		zap.Time("window_start", windowStart),
		zap.Int("total_orders", salesReport.TotalOrders),
		zap.String("total_sales", salesReport.TotalSales.String()))

	return toSalesReportResponse(salesReport), nil
}

func toSalesReportResponse(salesReport *report.SalesReport) *SalesReportResponse {
	topProducts := make([]ProductSalesResponse, 0, len(salesReport.TopProducts))
	for _, entry := range salesReport.TopProducts {
		topProducts = append(topProducts, ProductSalesResponse{
			ProductID: entry.ProductID,
			Count:     entry.Count,
		})
	}

	return &SalesReportResponse{
		GeneratedAt:   salesReport.GeneratedAt,
		WindowStart:   salesReport.WindowStart,
		TotalSales:    toFloat64(salesReport.TotalSales),
		TotalOrders:   salesReport.TotalOrders,
		AvgOrderValue: toFloat64(salesReport.AvgOrderValue),
		TopProducts:   topProducts,
	}
}
