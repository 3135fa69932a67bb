package dotpath

import (
	"io"

	"seehuhn.de/go/geom/vec"
)

// Vertex is the canonical identity of a path node: its coordinates rounded onto the
// tolerance grid.  Vertex is comparable and is used directly as a map key.
type Vertex struct {
	X int64
	Y int64
}

// EdgeKey is the canonical (unordered) key of a segment, where A <= B.
//
// It is only used to detect coincident segments; the graph itself is a multigraph.
type EdgeKey struct {
	A Vertex
	B Vertex
}

// Segment is one drawable line segment in original (non-rounded) document coordinates.
type Segment struct {
	ID   int // 1, 2, 3, ..  in extraction order
	From vec.Vec2
	To   vec.Vec2
}

// Pair records an intended revisit join between two odd-degree vertices.
// Pairs are advisory and never alter the graph being traversed.
type Pair struct {
	A Vertex
	B Vertex
}

// Step is one move of a traversal.
type Step struct {
	Index int    // 1-based visit order
	From  Vertex // vertex the step leaves
	To    Vertex // vertex the step arrives at
	Drawn bool   // set if the step consumes a graph edge (vs. a jump in a partial traversal)
}

// TourKind names the outcome of the degree analysis for a path.
type TourKind int32

const (
	TourEmpty   TourKind = 0 // no vertices
	TourCircuit TourKind = 1 // zero odd vertices: closed traversal if the edges are connected
	TourPath    TourKind = 2 // two odd vertices: open traversal between them if the edges are connected
	TourPartial TourKind = 3 // more than two odd vertices: best-effort traversal, coverage not guaranteed
)

// Options specifies params for building a tour.
type Options struct {
	Tolerance float64 `yaml:"tolerance"` // canonicalization grid, in document units
	Flatness  float64 `yaml:"flatness"`  // max deviation when reducing curves to lines
}

// DefaultOptions rounds to whole document units.
var DefaultOptions = Options{
	Tolerance: 1,
	Flatness:  0.25,
}

// TourInfo summarizes a tour
type TourInfo struct {
	Kind        TourKind
	NumSegments int
	NumVertices int
	NumOdd      int
	NumSteps    int
	Coverage    int  // number of graph edges consumed by drawn steps
	Complete    bool // set if Coverage equals NumSegments
}

// TourState is the read side of a built tour, as needed by catalogs and printers.
type TourState interface {

	// Fingerprint identifies the canonical edge set of the source path (independent of drawing order).
	Fingerprint() string

	// Returns info about this tour
	GetInfo() TourInfo

	// Export converts this tour into plain records.
	Export() *TourRecord

	WriteAsString(out io.Writer, opts PrintOpts)
}

// PrintOpts specifies what is printed when printing a tour
type PrintOpts struct {
	Label    string // Prefix label
	Steps    bool   // If set, prints the ordered steps
	Pairs    bool   // If set, prints the odd-vertex pairs
	Segments bool   // If set, prints the deduplicated segments
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Steps: true,
	Pairs: true,
}

// TourAdder is a sink for built tours.
type TourAdder interface {

	// TryAddTour adds the given tour if its fingerprint is not already present.
	// If true is returned, T did not exist and was added.
	TryAddTour(T TourState) (bool, error)
}

// OnTourHit is used to return stored tour records.
type OnTourHit chan<- *TourRecord

// CatalogOpts specifies params for opening a tour Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog wraps a database of exported tours keyed by fingerprint.
type Catalog interface {
	TourAdder

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumTours returns the number of tours in this catalog.
	NumTours() int64

	// Lookup returns the stored record for the given fingerprint or ErrTourNotFound.
	Lookup(fingerprint string) (*TourRecord, error)

	// Select sends every stored record to onHit, in fingerprint order.
	Select(onHit OnTourHit) error

	Close() error
}

// CatalogContext is a container for open / active Catalog instances.
type CatalogContext interface {

	// Attaches the given Catalog to this context.
	AttachCatalog(cat Catalog)

	// Detaches the given Catalog from this context.
	DetachCatalog(cat Catalog)

	// Closes all open catalogs then closes.
	Close()

	// Signals when Close() completed and all open Catalogs have been closed
	Done() <-chan struct{}
}
