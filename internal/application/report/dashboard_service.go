package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/backoffice/server/internal/domain/catalog"
	"github.com/backoffice/server/internal/domain/report"
	"github.com/backoffice/server/internal/domain/shared"
)

// DashboardService computes the dashboard aggregation: it resolves the
// incoming filters into an order predicate, expands matching orders into
// per-product line rows, groups them by period and reduces the buckets
// into a KPI summary.
type DashboardService struct {
	orders   report.OrderReader
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(orders report.OrderReader, products catalog.ProductRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// PeriodKeyResponse mirrors report.PeriodKey for the HTTP response
type PeriodKeyResponse struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Week  int    `json:"week,omitempty"`
	Month int    `json:"month,omitempty"`
	Date  string `json:"date"`
}

// BucketResponse represents one aggregated period in the response
type BucketResponse struct {
	Period            PeriodKeyResponse `json:"period"`
	TotalOrders       int               `json:"totalOrders"`
	TotalRevenue      float64           `json:"totalRevenue"`
	AverageOrderValue float64           `json:"averageOrderValue"`
	Products          []string          `json:"products"`
	UniqueProductIDs  []string          `json:"uniqueProductIds"`
}

// KPISummaryResponse represents the global dashboard metrics
type KPISummaryResponse struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      float64         `json:"totalRevenue"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	UniqueProducts    int             `json:"uniqueProducts"`
	TotalPeriods      int             `json:"totalPeriods"`
	BestPeriod        *BucketResponse `json:"bestPeriod"`
}

// DashboardResponse is the dashboard endpoint payload
type DashboardResponse struct {
	KPIs      KPISummaryResponse `json:"kpis"`
	ChartData []BucketResponse   `json:"chartData"`
}

// GetDashboard runs the full aggregation for the given filter
func (s *DashboardService) GetDashboard(ctx context.Context, filter report.DashboardFilter) (*DashboardResponse, error) {
	resolved, err := s.resolveFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buckets []report.AggregatedBucket
	if !resolved.Empty {
		buckets, err = s.aggregate(ctx, resolved.Predicate, filter.Granularity)
		if err != nil {
			return nil, err
		}
	}

	summary := summarizeBuckets(buckets)

	s.logger.Debug("dashboard aggregation computed",
		zap.String("granularity", string(filter.Granularity)),
		zap.Int("periods", summary.TotalPeriods),
		zap.Int("total_orders", summary.TotalOrders))

	return toDashboardResponse(report.DashboardData{KPIs: summary, ChartData: buckets}), nil
}

// resolveFilter validates the raw filter fields and builds the order
// predicate. A category that resolves to zero products short-circuits the
// whole aggregation: the result is empty by construction and the order
// store is never queried.
func (s *DashboardService) resolveFilter(ctx context.Context, filter report.DashboardFilter) (report.ResolvedFilter, error) {
	var predicate report.OrderPredicate

	if filter.ProductID != "" {
		productID, err := primitive.ObjectIDFromHex(filter.ProductID)
		if err != nil {
			return report.ResolvedFilter{}, shared.NewDomainError("INVALID_PRODUCT_ID", "Product id must be a 24-character hex string")
		}
		predicate.ProductID = &productID
	}

	if filter.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(filter.CategoryID)
		if err != nil {
			return report.ResolvedFilter{}, shared.NewDomainError("INVALID_CATEGORY_ID", "Category id must be a 24-character hex string")
		}

		products, err := s.products.FindByCategory(ctx, categoryID)
		if err != nil {
			return report.ResolvedFilter{}, err
		}
		if len(products) == 0 {
			return report.ResolvedFilter{Empty: true}, nil
		}

		productIDs := make([]primitive.ObjectID, 0, len(products))
		for i := range products {
			productIDs = append(productIDs, products[i].ID)
		}
		predicate.ProductIDs = productIDs
	}

	// A date bound only applies when both ends are present
	if filter.StartDate != nil && filter.EndDate != nil {
		predicate.StartDate = filter.StartDate
		predicate.EndDate = filter.EndDate
	}

	return report.ResolvedFilter{Predicate: predicate}, nil
}

// lineRow is one (order, product) pair produced by expanding an order's
// product-id sequence; it carries the order's date and total unchanged
type lineRow struct {
	productID string
	date      time.Time
	total     decimal.Decimal
}

type bucketAccumulator struct {
	period  report.PeriodKey
	count   int
	revenue decimal.Decimal
	names   []string
	nameSet map[string]struct{}
	ids     []string
	idSet   map[string]struct{}
}

// aggregate fetches the matching orders, expands them into line rows,
// joins the rows to products and groups them into period buckets.
//
// Revenue here is summed once per line row: a multi-product order
// contributes its full total once for every line. This line-level semantic
// is deliberate and must not be collapsed to order-level totals.
func (s *DashboardService) aggregate(ctx context.Context, predicate report.OrderPredicate, granularity report.Granularity) ([]report.AggregatedBucket, error) {
	orders, err := s.orders.FindByPredicate(ctx, predicate)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}

	// Expand orders into line rows, dropping malformed product references
	var rows []lineRow
	seen := make(map[string]struct{})
	var joinIDs []primitive.ObjectID
	for i := range orders {
		order := &orders[i]
		for _, rawID := range order.ProductIDs {
			productID, err := primitive.ObjectIDFromHex(rawID)
			if err != nil {
				continue
			}
			rows = append(rows, lineRow{
				productID: rawID,
				date:      order.Date,
				total:     order.Total,
			})
			if _, ok := seen[rawID]; !ok {
				seen[rawID] = struct{}{}
				joinIDs = append(joinIDs, productID)
			}
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	products, err := s.products.FindByIDs(ctx, joinIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]*catalog.Product, len(products))
	for i := range products {
		productsByID[products[i].ID.Hex()] = &products[i]
	}

	// Group line rows by period key; rows referencing unknown products are
	// dropped (inner join)
	accumulators := make(map[string]*bucketAccumulator)
	var labels []string
	for _, row := range rows {
		product, ok := productsByID[row.productID]
		if !ok {
			continue
		}

		key := granularity.PeriodKeyFor(row.date)
		acc, ok := accumulators[key.Label]
		if !ok {
			acc = &bucketAccumulator{
				period:  key,
				revenue: decimal.Zero,
				nameSet: make(map[string]struct{}),
				idSet:   make(map[string]struct{}),
			}
			accumulators[key.Label] = acc
			labels = append(labels, key.Label)
		}

		acc.count++
		acc.revenue = acc.revenue.Add(row.total)
		if _, ok := acc.nameSet[product.Name]; !ok {
			acc.nameSet[product.Name] = struct{}{}
			acc.names = append(acc.names, product.Name)
		}
		if _, ok := acc.idSet[row.productID]; !ok {
			acc.idSet[row.productID] = struct{}{}
			acc.ids = append(acc.ids, row.productID)
		}
	}

	buckets := make([]report.AggregatedBucket, 0, len(labels))
	for _, label := range labels {
		acc := accumulators[label]
		average := acc.revenue.Div(decimal.NewFromInt(int64(acc.count)))
		buckets = append(buckets, report.AggregatedBucket{
			Period:            acc.period,
			TotalOrders:       acc.count,
			TotalRevenue:      acc.revenue.Round(2),
			AverageOrderValue: average.Round(2),
			Products:          acc.names,
			UniqueProductIDs:  acc.ids,
		})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Period.Date < buckets[j].Period.Date
	})

	return buckets, nil
}

// summarizeBuckets reduces the bucket list into the global KPI summary.
// BestPeriod is nil for an empty list; exact revenue ties keep the first
// bucket encountered.
func summarizeBuckets(buckets []report.AggregatedBucket) report.KPISummary {
	summary := report.KPISummary{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		TotalPeriods:      len(buckets),
	}

	names := make(map[string]struct{})
	var best *report.AggregatedBucket
	for i := range buckets {
		bucket := &buckets[i]
		summary.TotalOrders += bucket.TotalOrders
		summary.TotalRevenue = summary.TotalRevenue.Add(bucket.TotalRevenue)
		for _, name := range bucket.Products {
			names[name] = struct{}{}
		}
		if best == nil || bucket.TotalRevenue.GreaterThan(best.TotalRevenue) {
			best = bucket
		}
	}

	summary.TotalRevenue = summary.TotalRevenue.Round(2)
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.TotalOrders))).Round(2)
	}
	summary.UniqueProducts = len(names)
	summary.BestPeriod = best

	return summary
}

func toDashboardResponse(data report.DashboardData) *DashboardResponse {
	summary := data.KPIs
	chartData := make([]BucketResponse, 0, len(data.ChartData))
	for i := range data.ChartData {
		chartData = append(chartData, toBucketResponse(&data.ChartData[i]))
	}

	kpis := KPISummaryResponse{
		TotalOrders:       summary.TotalOrders,
		TotalRevenue:      toFloat64(summary.TotalRevenue),
		AverageOrderValue: toFloat64(summary.AverageOrderValue),
		UniqueProducts:    summary.UniqueProducts,
		TotalPeriods:      summary.TotalPeriods,
	}
	if summary.BestPeriod != nil {
		best := toBucketResponse(summary.BestPeriod)
		kpis.BestPeriod = &best
	}

	return &DashboardResponse{
		KPIs:      kpis,
		ChartData: chartData,
	}
}

func toBucketResponse(bucket *report.AggregatedBucket) BucketResponse {
	return BucketResponse{
		Period: PeriodKeyResponse{
			Label: bucket.Period.Label,
			Year:  bucket.Period.Year,
			Week:  bucket.Period.Week,
			Month: bucket.Period.Month,
			Date:  bucket.Period.Date,
		},
		TotalOrders:       bucket.TotalOrders,
		TotalRevenue:      toFloat64(bucket.TotalRevenue),
		AverageOrderValue: toFloat64(bucket.AverageOrderValue),
		Products:          bucket.Products,
		UniqueProductIDs:  bucket.UniqueProductIDs,
	}
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
