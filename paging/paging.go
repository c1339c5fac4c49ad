// Package paging maps long track and device lists onto the eight physical
// controls.
package paging

// PageSize is the number of controls per page.
const PageSize = 8

// Start returns the first index of the page holding index.
func Start(index int) int {
	if index < 0 {
		return 0
	}
	return index / PageSize * PageSize
}

// Last returns the start of the last page of a list of total items.
func Last(total int) int {
	return Start(max(0, total-1))
}

// Window is the visible slice of one list. The zero value shows the first
// page.
type Window struct {
	first int
}

// First returns the index of the first visible item.
func (w *Window) First() int {
	return w.first
}

// Follow moves the window so index is visible. It reports whether the start
// changed.
func (w *Window) Follow(index int) bool {
	return w.move(Start(index))
}

// Shrink re-clamps the window after the list shrank to total items.
func (w *Window) Shrink(total int) bool {
	if total > w.first {
		return false
	}
	return w.move(Last(total))
}

// Set applies a start requested by the hardware. Requests beyond the list are
// rejected; accepted values are floored to the page boundary.
func (w *Window) Set(requested, total int) bool {
	if requested < 0 || requested >= total {
		return false
	}
	w.first = Start(requested)
	return true
}

// Visible returns the half-open range [start, end) of indices shown for a
// list of total items.
func (w *Window) Visible(total int) (start, end int) {
	start = w.first
	end = min(total, start+PageSize)
	if end < start {
		end = start
	}
	return start, end
}

// Slot returns the list index behind control slot, and whether it exists.
func (w *Window) Slot(slot, total int) (int, bool) {
	i := w.first + slot
	return i, slot >= 0 && slot < PageSize && i < total
}

func (w *Window) move(first int) bool {
	if first == w.first {
		return false
	}
	w.first = first
	return true
}

// SendPageStart returns the first send shown on a page of the selected-track
// mixer. Page 0 leads with volume and pan, which take two controls.
func SendPageStart(page int) int {
	if page <= 0 {
		return 0
	}
	return 6 + (page-1)*PageSize
}

// ClampSendPage keeps the selected-track page inside the strips available
// for a session with returns return tracks. It reports whether page changed.
func ClampSendPage(page, returns int) (int, bool) {
	strips := returns + 2
	if strips <= page*PageSize {
		return (strips - 1) / PageSize, true
	}
	return page, false
}
