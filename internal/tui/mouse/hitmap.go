// Package mouse maps screen cells back to the widgets rendered there.
//
// Views record regions while rendering and Update tests the click
// coordinates against the last recorded set. Regions added later take
// priority, so overlays register after the content they cover.
package mouse

// Rect is a screen rectangle. W and H are exclusive extents.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, clickable rectangle with optional attached data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap is an ordered set of regions.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Clear drops all regions. Call it at the start of every render.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// AddRect registers a region. Empty rectangles are ignored.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	if w <= 0 || h2 <= 0 {
		return
	}
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns a copy of the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}
