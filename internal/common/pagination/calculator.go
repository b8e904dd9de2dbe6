package pagination

// CalculateOffset returns the upstream offset for a 1-based page number.
//
//	Page 1, Limit 6 -> Offset 0
//	Page 2, Limit 6 -> Offset 6
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns the page count for a result set, always at
// least 1 so the pager renders even for empty results.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
