package dotpath

import (
	"github.com/gogo/protobuf/proto"
)

// TourRecord is the plain, serializable form of a tour.
//
// Vertices are written as coordinate tuples (see FormatTuple) in document units.
type TourRecord struct {
	Fingerprint string             `protobuf:"bytes,1,opt,name=fingerprint,proto3" json:"fingerprint"`
	Kind        int32              `protobuf:"varint,2,opt,name=kind,proto3" json:"kind"`
	Segments    []*SegmentRecord   `protobuf:"bytes,3,rep,name=segments,proto3" json:"segments"`
	Adjacency   []*AdjacencyRecord `protobuf:"bytes,4,rep,name=adjacency,proto3" json:"-"`
	Steps       []*StepRecord      `protobuf:"bytes,5,rep,name=steps,proto3" json:"steps"`
	Pairs       []*PairRecord      `protobuf:"bytes,6,rep,name=pairs,proto3" json:"pairs,omitempty"`
	Coverage    int32              `protobuf:"varint,7,opt,name=coverage,proto3" json:"coverage"`
	Duplicates  int32              `protobuf:"varint,8,opt,name=duplicates,proto3" json:"duplicates"`
	Degenerate  int32              `protobuf:"varint,9,opt,name=degenerate,proto3" json:"degenerate"`
}

type SegmentRecord struct {
	ID int32   `protobuf:"varint,1,opt,name=id,proto3" json:"id"`
	X1 float64 `protobuf:"fixed64,2,opt,name=x1,proto3" json:"x1"`
	Y1 float64 `protobuf:"fixed64,3,opt,name=y1,proto3" json:"y1"`
	X2 float64 `protobuf:"fixed64,4,opt,name=x2,proto3" json:"x2"`
	Y2 float64 `protobuf:"fixed64,5,opt,name=y2,proto3" json:"y2"`
}

// AdjacencyRecord lists the neighbours of one vertex, in insertion order.
type AdjacencyRecord struct {
	Vertex    string   `protobuf:"bytes,1,opt,name=vertex,proto3" json:"vertex"`
	Neighbors []string `protobuf:"bytes,2,rep,name=neighbors,proto3" json:"neighbors"`
}

type StepRecord struct {
	Step  int32  `protobuf:"varint,1,opt,name=step,proto3" json:"step"`
	From  string `protobuf:"bytes,2,opt,name=from,proto3" json:"from"`
	To    string `protobuf:"bytes,3,opt,name=to,proto3" json:"to"`
	Drawn bool   `protobuf:"varint,4,opt,name=drawn,proto3" json:"drawn"`
}

type PairRecord struct {
	A string `protobuf:"bytes,1,opt,name=a,proto3" json:"a"`
	B string `protobuf:"bytes,2,opt,name=b,proto3" json:"b"`
}

// CatalogState is the versioned header of a tour catalog.
type CatalogState struct {
	MajorVers int32 `protobuf:"varint,1,opt,name=major_vers,json=majorVers,proto3" json:"major_vers"`
	MinorVers int32 `protobuf:"varint,2,opt,name=minor_vers,json=minorVers,proto3" json:"minor_vers"`
	NumTours  int64 `protobuf:"varint,3,opt,name=num_tours,json=numTours,proto3" json:"num_tours"`
}

func (m *TourRecord) Reset()         { *m = TourRecord{} }
func (m *TourRecord) String() string { return proto.CompactTextString(m) }
func (*TourRecord) ProtoMessage()    {}

func (m *SegmentRecord) Reset()         { *m = SegmentRecord{} }
func (m *SegmentRecord) String() string { return proto.CompactTextString(m) }
func (*SegmentRecord) ProtoMessage()    {}

func (m *AdjacencyRecord) Reset()         { *m = AdjacencyRecord{} }
func (m *AdjacencyRecord) String() string { return proto.CompactTextString(m) }
func (*AdjacencyRecord) ProtoMessage()    {}

func (m *StepRecord) Reset()         { *m = StepRecord{} }
func (m *StepRecord) String() string { return proto.CompactTextString(m) }
func (*StepRecord) ProtoMessage()    {}

func (m *PairRecord) Reset()         { *m = PairRecord{} }
func (m *PairRecord) String() string { return proto.CompactTextString(m) }
func (*PairRecord) ProtoMessage()    {}

func (m *CatalogState) Reset()         { *m = CatalogState{} }
func (m *CatalogState) String() string { return proto.CompactTextString(m) }
func (*CatalogState) ProtoMessage()    {}

// TourKind returns the record's kind as a TourKind.
func (m *TourRecord) TourKind() TourKind {
	return TourKind(m.Kind)
}

// AdjacencyMap returns the adjacency as vertex tuple => neighbour tuples.
func (m *TourRecord) AdjacencyMap() map[string][]string {
	adj := make(map[string][]string, len(m.Adjacency))
	for _, ai := range m.Adjacency {
		adj[ai.Vertex] = ai.Neighbors
	}
	return adj
}

// Encode encodes this record in protobuf wire format.
//
// Not named Marshal / Unmarshal: proto.Marshal defers to methods with those names.
func (m *TourRecord) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// Decode decodes a record previously written by Encode.
func (m *TourRecord) Decode(buf []byte) error {
	return proto.Unmarshal(buf, m)
}

func (m *CatalogState) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *CatalogState) Decode(buf []byte) error {
	return proto.Unmarshal(buf, m)
}
