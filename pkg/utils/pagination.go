package utils

// DefaultLimit is used when the caller does not send a limit
const DefaultLimit = 10

// MaxLimit caps a single page
const MaxLimit = 100

// PaginationParams holds skip/limit request parameters
type PaginationParams struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Limit     int   `json:"limit"`
	Skip      int   `json:"skip"`
	Count     int64 `json:"count"`
	DataCount int   `json:"data_count"`
}

// GetPaginationParams normalizes skip and limit
func GetPaginationParams(skip, limit int) PaginationParams {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PaginationParams{
		Skip:  skip,
		Limit: limit,
	}
}

// CalculateMeta generates pagination metadata for a page of dataCount rows
func CalculateMeta(totalCount int64, p PaginationParams, dataCount int) PaginationMeta {
	return PaginationMeta{
		Limit:     p.Limit,
		Skip:      p.Skip,
		Count:     totalCount,
		DataCount: dataCount,
	}
}
