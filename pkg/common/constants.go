package common

const (
	TenantHeader = "SourceTenantId"

	DefaultDebtorAccount   = "1234567890"
	DefaultCreditorAccount = "0987654321"

	HistoryPageSize = 20

	// TMS returns this for a transport failure instead of an HTTP status.
	StatusConnectionFailed = 0
)
