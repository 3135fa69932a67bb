package pydot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
	"github.com/2x3systems/dotpath/libdot/catalog"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyTourType       = py.NewType("Tour", "a traversal of the graph drawn by a path")
	pyTourStreamType = py.NewType("TourStream", "libdot.TourStream")
	pyCatalogType    = py.NewType("Catalog", "dotpath.Catalog")
	pyWorkspaceType  = py.NewType("Workspace", "collects active session resources and catalogs")
)

type pyTour struct {
	*libdot.Tour
}

func (T pyTour) Type() *py.Type {
	return pyTourType
}

func (T pyTour) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	T.WriteAsString(&writer, dotpath.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (T pyTour) M__repr__() (py.Object, error) {
	return T.M__str__()
}

// loadOptions reads an optional tolerance from args[from].
func loadOptions(args py.Tuple, from int) (dotpath.Options, error) {
	opts := dotpath.DefaultOptions
	if len(args) > from {
		tol, err := py.FloatAsFloat64(args[from])
		if err != nil {
			return opts, err
		}
		opts.Tolerance = tol
	}
	if err := opts.Validate(); err != nil {
		return opts, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return opts, nil
}

// Arg 1 (str): SVG path data
// Arg 2 (float, optional): tolerance
func py_Tour(module py.Object, args py.Tuple) (py.Object, error) {
	var pathData string
	err := py.LoadTuple(args[:min(len(args), 1)], []interface{}{&pathData})
	if err != nil {
		return nil, err
	}
	opts, err := loadOptions(args, 1)
	if err != nil {
		return nil, err
	}

	T, err := libdot.BuildTourFromString(pathData, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyTour{T}), nil
}

func py_Tour_Kind(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	return py.String(T.Kind().String()), nil
}

func py_Tour_Coverage(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	return py.Int(T.Coverage()), nil
}

func py_Tour_NumSegments(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	return py.Int(len(T.Segments())), nil
}

func py_Tour_Fingerprint(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	return py.String(T.Fingerprint()), nil
}

// Returns a tuple of (step, from, to, drawn) tuples
func py_Tour_Steps(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	canon := T.Canon()

	steps := T.Steps()
	tuple := make(py.Tuple, len(steps))
	for i, step := range steps {
		tuple[i] = py.Tuple{
			py.Int(step.Index),
			py.String(canon.Tuple(step.From)),
			py.String(canon.Tuple(step.To)),
			py.NewBool(step.Drawn),
		}
	}
	return tuple, nil
}

// Returns a tuple of (a, b) vertex tuples
func py_Tour_Pairs(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	canon := T.Canon()

	pairs := T.Pairs()
	tuple := make(py.Tuple, len(pairs))
	for i, pair := range pairs {
		tuple[i] = py.Tuple{
			py.String(canon.Tuple(pair.A)),
			py.String(canon.Tuple(pair.B)),
		}
	}
	return tuple, nil
}

func py_Tour_JSON(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	buf := strings.Builder{}
	if err := T.WriteJSON(&buf); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.String(buf.String()), nil
}

func py_Tour_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	T := self.(pyTour)
	return wrapTourStream(libdot.StreamTour(T.Tour)), nil
}

// Arg 1 (list or tuple of str): SVG path data for each path
// Arg 2 (float, optional): tolerance
func py_StreamPaths(module py.Object, args py.Tuple) (py.Object, error) {
	if len(args) == 0 {
		return nil, py.ExceptionNewf(py.TypeError, "StreamPaths() expects a list of path data strings")
	}

	var items py.Tuple
	switch seq := args[0].(type) {
	case py.Tuple:
		items = seq
	case *py.List:
		items = seq.Items
	default:
		return nil, py.ExceptionNewf(py.TypeError, "expected list or tuple (got %v)", args[0].Type().Name)
	}

	pathData := make([]string, len(items))
	for i, item := range items {
		str, ok := item.(py.String)
		if !ok {
			return nil, py.ExceptionNewf(py.TypeError, "item %d: expected str (got %v)", i, item.Type().Name)
		}
		pathData[i] = string(str)
	}

	opts, err := loadOptions(args, 1)
	if err != nil {
		return nil, err
	}
	return wrapTourStream(libdot.StreamPaths(pathData, opts)), nil
}

const (
	READ_ONLY = 0x01

	kWorkspaceAttr = "_Workspace"
)

type Workspace struct {
	CatalogCtx dotpath.CatalogContext
}

func (ws *Workspace) Close() {
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		ws := &Workspace{
			CatalogCtx: dotpath.NewCatalogContext(),
		}
		wsObj = ws
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj, nil
}

// Arg 1 (str): catalog directory ("" for an in-memory catalog)
// Arg 2 (int, optional): flags (READ_ONLY)
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var flags int32
	err := py.LoadTuple(args[:min(len(args), 1)], []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		flagsVal, err := py.GetInt(args[1])
		if err != nil {
			return nil, err
		}
		flags = int32(flagsVal)
	}

	opts := dotpath.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}

	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyCatalog{cat}), nil
}

type pyCatalog struct {
	dotpath.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
	}
	return py.None, nil
}

func py_Catalog_NumTours(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumTours()), nil
}

// Returns the stored tour for the given fingerprint as JSON, or None
func py_Catalog_Lookup(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)

	var fingerprint string
	err := py.LoadTuple(args, []interface{}{&fingerprint})
	if err != nil {
		return nil, err
	}

	rec, err := cat.Lookup(fingerprint)
	if err == dotpath.ErrTourNotFound {
		return py.None, nil
	}
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	buf := strings.Builder{}
	if err = libdot.WriteRecordJSON(&buf, rec); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.String(buf.String()), nil
}

type tourStream struct {
	*libdot.TourStream
}

func (stream tourStream) Type() *py.Type {
	return pyTourStreamType
}

func wrapTourStream(stream *libdot.TourStream) py.Object {
	return py.Object(tourStream{stream})
}

func py_TourStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(tourStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// Print(label, steps=True, pairs=True, segments=False, file="")
func py_TourStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(tourStream)
	var pathname string

	opts := dotpath.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		py.LoadAttr(kwargs, "label", &opts.Label)
	}

	n := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", n)
	}

	py.LoadAttr(kwargs, "steps", &opts.Steps)
	py.LoadAttr(kwargs, "pairs", &opts.Pairs)
	py.LoadAttr(kwargs, "segments", &opts.Segments)
	py.LoadAttr(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapTourStream(next), nil
}

func py_TourStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(tourStream)
	if len(args) == 0 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo() expects a Catalog")
	}
	cat, ok := args[0].(pyCatalog)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "expected Catalog object (got %v)", args[0].Type().Name)
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", dotpath.ErrCatalogReadOnly)
	}

	next := stream.AddTo(cat)
	return wrapTourStream(next), nil
}

func py_TourStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(tourStream)
	return wrapTourStream(stream.DropDupes()), nil
}

func init() {

	/////////////////////////////////
	// Tour
	{
		pyTourType.Dict["Kind"] = py.MustNewMethod("Kind", py_Tour_Kind, 0, "circuit, path, partial, or empty")
		pyTourType.Dict["Steps"] = py.MustNewMethod("Steps", py_Tour_Steps, 0, "ordered (step, from, to, drawn) tuples")
		pyTourType.Dict["Pairs"] = py.MustNewMethod("Pairs", py_Tour_Pairs, 0, "advisory odd-vertex pairs")
		pyTourType.Dict["Coverage"] = py.MustNewMethod("Coverage", py_Tour_Coverage, 0, "number of edges drawn by the traversal")
		pyTourType.Dict["NumSegments"] = py.MustNewMethod("NumSegments", py_Tour_NumSegments, 0, "")
		pyTourType.Dict["Fingerprint"] = py.MustNewMethod("Fingerprint", py_Tour_Fingerprint, 0, "")
		pyTourType.Dict["JSON"] = py.MustNewMethod("JSON", py_Tour_JSON, 0, "exports this Tour as JSON")
		pyTourType.Dict["Stream"] = py.MustNewMethod("Stream", py_Tour_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["NumTours"] = py.MustNewMethod("NumTours", py_Catalog_NumTours, 0, "")
		pyCatalogType.Dict["Lookup"] = py.MustNewMethod("Lookup", py_Catalog_Lookup, 0, "returns a stored tour as JSON, or None")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "")
	}

	/////////////////////////////////
	// TourStream
	{
		pyTourStreamType.Dict["Go"] = py.MustNewMethod("Go", py_TourStream_Go, 0, "counts the number of tours output from the TourStream")
		pyTourStreamType.Dict["Print"] = py.MustNewMethod("Print", py_TourStream_Print, 0, "prints each tour from the TourStream")
		pyTourStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_TourStream_AddTo, 0, "")
		pyTourStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_TourStream_DropDupes, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("Tour", py_Tour, 0, "builds the Tour of SVG path data"),
			py.MustNewMethod("StreamPaths", py_StreamPaths, 0, ""),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"READ_ONLY":   py.Int(READ_ONLY),
			"CIRCUIT":     py.String(dotpath.TourCircuit.String()),
			"PATH":        py.String(dotpath.TourPath.String()),
			"PARTIAL":     py.String(dotpath.TourPartial.String()),
			"EMPTY":       py.String(dotpath.TourEmpty.String()),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "pydot",
				Doc:  "connect-the-dots path traversal gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
