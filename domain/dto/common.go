package dto

// DateLayout คือ format ของ date-only fields ทั้ง request และ response
const DateLayout = "2006-01-02"

type PaginationMeta struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}
