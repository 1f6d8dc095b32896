package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedBucket is one grouped aggregation result for a single period.
// Produced fresh per request and discarded after the response.
//
// TotalOrders and the revenue figures are line-level: every (order, product)
// line row in the bucket counts once, so a multi-product order contributes
// its full total once per line. The sales report in this package uses
// order-level totals instead; the two semantics are intentionally distinct.
type AggregatedBucket struct {
	Period            PeriodKey       `json:"period"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	Products          []string        `json:"products"`
	UniqueProductIDs  []string        `json:"uniqueProductIds"`
}

// KPISummary holds the global metrics computed over a bucket list
type KPISummary struct {
	TotalOrders       int              `json:"totalOrders"`
	TotalRevenue      decimal.Decimal  `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal  `json:"averageOrderValue"`
	UniqueProducts    int              `json:"uniqueProducts"`
	TotalPeriods      int              `json:"totalPeriods"`
	BestPeriod        *AggregatedBucket `json:"bestPeriod"`
}

// DashboardData is the full dashboard aggregation result
type DashboardData struct {
	KPIs       KPISummary         `json:"kpis"`
	ChartData  []AggregatedBucket `json:"chartData"`
}

// ProductSales is one entry of the sales report's product ranking; Count is
// the number of line occurrences of the product across the window's orders
type ProductSales struct {
	ProductID string `json:"productId"`
	Count     int    `json:"count"`
}

// SalesReport is the trailing-window sales summary handed to the
// notification channel. Totals here are order-level: each order's total
// counts exactly once regardless of how many lines it has.
type SalesReport struct {
	GeneratedAt   time.Time       `json:"generatedAt"`
	WindowStart   time.Time       `json:"windowStart"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalOrders   int             `json:"totalOrders"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
	TopProducts   []ProductSales  `json:"topProducts"`
}
