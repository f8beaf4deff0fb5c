package models

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

func NewPage[T any](items []T, total, page, limit int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	var pages int64
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Page[T]{
		Items: items,
		Meta:  PageMeta{Total: total, Page: page, Limit: limit, TotalPages: pages},
	}
}
