package observability

import (
	"testing"
	"time"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordExchange("get", OutcomeOK, 12*time.Millisecond)
	RecordExchange("put", OutcomeServerErr, 24*time.Millisecond)
	RecordBytes("get", 31, 128)
	RecordStreamPage("list-keys")
}
