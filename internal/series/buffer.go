// Package series holds the fixed-size rolling windows behind the dashboard charts.
package series

// DefaultMaxDataPoints is two minutes of data at the dryer's 2-second push rate.
const DefaultMaxDataPoints = 60

// Point is one chart sample. A nil Value is drawn as a gap, never as zero.
type Point struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
}

// Buffer is a FIFO of exactly capacity points. It is not safe for concurrent use;
// the owner serializes access.
type Buffer struct {
	points []Point
	head   int // index of the oldest point
}

// NewBuffer returns a buffer pre-filled with capacity empty points.
// A non-positive capacity falls back to DefaultMaxDataPoints.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultMaxDataPoints
	}
	return &Buffer{points: make([]Point, capacity)}
}

// Push appends (label, value) and drops the oldest point.
func (b *Buffer) Push(label string, value *float64) {
	b.points[b.head] = Point{Label: label, Value: copyValue(value)}
	b.head = (b.head + 1) % len(b.points)
}

// Len is always the capacity.
func (b *Buffer) Len() int { return len(b.points) }

// Points returns the window oldest first.
func (b *Buffer) Points() []Point {
	out := make([]Point, 0, len(b.points))
	out = append(out, b.points[b.head:]...)
	out = append(out, b.points[:b.head]...)
	for i := range out {
		out[i].Value = copyValue(out[i].Value)
	}
	return out
}

// Labels returns the labels oldest first.
func (b *Buffer) Labels() []string {
	pts := b.Points()
	out := make([]string, len(pts))
	for i, p := range pts {
		out[i] = p.Label
	}
	return out
}

// Values returns the values oldest first.
func (b *Buffer) Values() []*float64 {
	pts := b.Points()
	out := make([]*float64, len(pts))
	for i, p := range pts {
		out[i] = p.Value
	}
	return out
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
