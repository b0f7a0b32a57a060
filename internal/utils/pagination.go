// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// NewPagination computes the metadata for a page of `limit` items out of
// `total`. Page and limit are assumed to be validated (>= 1) upstream.
//
// Example:
//
//	meta := utils.NewPagination(2, 20, 45)
//	// Page:2 Limit:20 Total:45 TotalPages:3 HasNext:true
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// Offset converts a validated (page, limit) pair into a query offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
