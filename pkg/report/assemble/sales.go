package assemble

import (
	"context"
	"errors"

	"storeline-hq/saturn/pkg/report"
	"storeline-hq/saturn/pkg/report/format"
)

var salesFields = report.FieldList{
	"Period Start",
	"Order Count",
	"Total Sales",
	"Average Order Value",
	"Items Sold",
}

// SalesAssembler shapes the pre-aggregated sales time series into the sales
// report. Aggregation is delegated entirely to the data source: the
// assembler requests one bucket per interval at the chosen granularity
// (daily when unset) and formats what comes back. Buckets are always
// ascending by time; the FilterSet sort override does not apply.
type SalesAssembler struct{}

// Kind returns report.KindSales.
func (a *SalesAssembler) Kind() report.ReportKind { return report.KindSales }

// Assemble implements the Assembler interface.
func (a *SalesAssembler) Assemble(ctx context.Context, src report.DataSource, filters *report.FilterSet) (report.FieldList, []report.Row, error) {
	f := filters.Clone()
	granularity := f.Granularity
	if granularity == "" {
		granularity = report.GranularityDaily
	}

	buckets, err := src.FindTimeBuckets(ctx, f.StartDate, f.EndDate, granularity)
	if err != nil {
		var dae *report.DataAccessError
		if errors.As(err, &dae) {
			return nil, nil, err
		}
		return nil, nil, report.NewDataAccessError(a.Kind(), "find_time_buckets", err)
	}

	rows := make([]report.Row, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, report.Row{
			"Period Start":        format.Timestamp(b.BucketStart),
			"Order Count":         format.Int(b.Count),
			"Total Sales":         format.Money(b.SumAmount),
			"Average Order Value": format.Ratio(b.MeanAmount),
			"Items Sold":          format.Int(b.SumQuantity),
		})
	}

	return salesFields, rows, nil
}
