package dotpath

import (
	"math"
	"strconv"
	"sync"
)

// Less orders vertices by X then Y.
func (v Vertex) Less(o Vertex) bool {
	if v.X != o.X {
		return v.X < o.X
	}
	return v.Y < o.Y
}

// Distance returns the euclidean distance between two vertices, in grid units.
func (v Vertex) Distance(o Vertex) float64 {
	return math.Hypot(float64(v.X-o.X), float64(v.Y-o.Y))
}

// String renders v as a coordinate tuple, e.g. "(10, 0)".
func (v Vertex) String() string {
	return FormatTuple(float64(v.X), float64(v.Y))
}

// FormatTuple renders a coordinate pair the way vertex keys are written in exported records.
func FormatTuple(x, y float64) string {
	var buf [64]byte
	b := append(buf[:0], '(')
	b = strconv.AppendFloat(b, x, 'g', -1, 64)
	b = append(b, ',', ' ')
	b = strconv.AppendFloat(b, y, 'g', -1, 64)
	b = append(b, ')')
	return string(b)
}

// FormEdgeKey forms the canonical EdgeKey for the given endpoints.
func FormEdgeKey(a, b Vertex) EdgeKey {
	if b.Less(a) {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// IsLoop returns true if both ends of the edge are the same vertex.
func (key EdgeKey) IsLoop() bool {
	return key.A == key.B
}

func (key EdgeKey) String() string {
	return key.A.String() + "-" + key.B.String()
}

func (kind TourKind) String() string {
	switch kind {
	case TourEmpty:
		return "empty"
	case TourCircuit:
		return "circuit"
	case TourPath:
		return "path"
	case TourPartial:
		return "partial"
	}
	return "TourKind(" + strconv.Itoa(int(kind)) + ")"
}

// IsEulerian returns true if the degree analysis admits a traversal using every edge exactly once.
// The traversal only achieves this when the edge set is connected (see Tour.IsComplete).
func (kind TourKind) IsEulerian() bool {
	return kind == TourCircuit || kind == TourPath
}

// Validate checks that opts can be used to build a tour.
func (opts *Options) Validate() error {
	if !(opts.Tolerance > 0) || math.IsInf(opts.Tolerance, 0) {
		return ErrBadTolerance
	}
	if !(opts.Flatness > 0) || math.IsInf(opts.Flatness, 0) {
		return ErrBadFlatness
	}
	return nil
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[Catalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	closeOnce    sync.Once
	openCount    sync.WaitGroup
	openCatalogs map[Catalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
}

func (ctx *catalogContext) AttachCatalog(cat Catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat Catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		open := make([]Catalog, 0, len(ctx.openCatalogs))
		for cat := range ctx.openCatalogs {
			open = append(open, cat)
		}
		ctx.mu.Unlock()

		// Catalog.Close() detaches, so it must run without holding mu
		for _, cat := range open {
			go cat.Close()
		}
	})
}
