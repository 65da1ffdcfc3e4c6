// Package models provides the typed CRUD facades of the shop backend:
// Products and Orders, each bound to its own schema over a shared
// docstore.Store. The facades are the boundary where raw pagination
// input is coerced; everything below them only ever sees clean values.
package models

// DefaultPageSize is the page size used when a caller passes a
// negative (i.e. unset) limit.
const DefaultPageSize = 25

// clampPage coerces raw offset/limit input: a negative offset becomes
// 0 and a negative limit becomes the default page size. A limit of 0
// is kept as-is and yields an empty page, not "no limit".
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = DefaultPageSize
	}
	return offset, limit
}
