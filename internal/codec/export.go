package codec

import "weightlog/internal/domain"

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// EncodeExport renders records in the named export format.
func EncodeExport(format string, records []domain.WeightRecord) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeRecordsJSON(records)
	case FormatCSV:
		return EncodeRecordsCSV(records), nil
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}
