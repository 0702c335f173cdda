// Package scheduler implements spec §4.3 (DrawFractal, the adaptive
// tile scheduler) and §4.4 (AntiAliase, the adaptive anti-alias pass),
// both expressed as task.Task values so they run on the shared worker
// pool with cooperative cancellation.
package scheduler

// Rect is a half-open pixel rectangle [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) W() int { return r.X1 - r.X0 }
func (r Rect) H() int { return r.Y1 - r.Y0 }

// Partition splits a w x h domain into at most k disjoint rectangles by
// recursively bisecting along the longer side (spec §4.3 step 3): if
// the longer side has length 1, the other side is bisected instead so
// the recursion stays productive until only 1x1/1xN/Nx1 pieces remain.
func Partition(w, h, k int) []Rect {
	if k < 1 {
		k = 1
	}
	return split(Rect{0, 0, w, h}, k)
}

func split(r Rect, k int) []Rect {
	if k <= 1 || (r.W() <= 1 && r.H() <= 1) {
		return []Rect{r}
	}
	splitWide := r.W() >= r.H()
	if splitWide && r.W() <= 1 {
		splitWide = false
	} else if !splitWide && r.H() <= 1 {
		splitWide = true
	}

	k1 := k / 2
	k2 := k - k1

	if splitWide {
		mid := r.X0 + r.W()*k1/k
		if mid <= r.X0 {
			mid = r.X0 + 1
		}
		if mid >= r.X1 {
			mid = r.X1 - 1
		}
		left := Rect{r.X0, r.Y0, mid, r.Y1}
		right := Rect{mid, r.Y0, r.X1, r.Y1}
		return append(split(left, k1), split(right, k2)...)
	}

	mid := r.Y0 + r.H()*k1/k
	if mid <= r.Y0 {
		mid = r.Y0 + 1
	}
	if mid >= r.Y1 {
		mid = r.Y1 - 1
	}
	top := Rect{r.X0, r.Y0, r.X1, mid}
	bottom := Rect{r.X0, mid, r.X1, r.Y1}
	return append(split(top, k1), split(bottom, k2)...)
}
