package core

// Layer tells which pick source produced a hit.
type Layer int

const (
	LayerScene Layer = iota
	LayerGizmo
)

func (l Layer) String() string {
	if l == LayerGizmo {
		return "gizmo"
	}
	return "scene"
}

const (
	PriorityScene = 0
	PriorityGizmo = 100
)

// Hit is one pick candidate. Resolution compares Priority first and only then
// Distance, so an always-on-top layer wins regardless of depth.
type Hit struct {
	Layer    Layer
	Priority int
	Distance float32

	// Gizmo hits.
	Tag    Axis
	Handle int

	// Scene hits.
	ID string
}

// Resolve picks the winning hit: highest priority, then nearest.
func Resolve(hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Priority > best.Priority || (h.Priority == best.Priority && h.Distance < best.Distance) {
			best = h
		}
	}
	return best, true
}
