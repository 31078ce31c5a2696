package report

import "errors"

var (
	ErrAggregationFailed = errors.New("failed to aggregate work hours")
	ErrExportFailed      = errors.New("failed to export report")
)
