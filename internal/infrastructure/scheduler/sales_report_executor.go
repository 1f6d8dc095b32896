package scheduler

import (
	"context"

	"go.uber.org/zap"

	appreport "github.com/backoffice/server/internal/application/report"
)

// SalesReportExecutor runs sales report jobs against the application service
type SalesReportExecutor struct {
	service *appreport.SalesReportService
	logger  *zap.Logger
}

// NewSalesReportExecutor creates a new SalesReportExecutor
func NewSalesReportExecutor(service *appreport.SalesReportService, logger *zap.Logger) *SalesReportExecutor {
	return &SalesReportExecutor{
		service: service,
		logger:  logger,
	}
}

// Execute dispatches the job to the sales report service
func (e *SalesReportExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case JobKindSalesReport:
		result, err := e.service.Generate(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("Scheduled sales report delivered",
			zap.String("job_id", job.ID.String()),
			zap.Int("total_orders", result.TotalOrders),
			zap.Float64("total_sales", result.TotalSales),
		)
		return nil
	default:
		return ErrUnknownJobKind
	}
}

var _ JobExecutor = (*SalesReportExecutor)(nil)
