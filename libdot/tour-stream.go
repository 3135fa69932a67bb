package libdot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/plan-systems/klog"
)

// TourStream is a stage of a tour pipeline.  Each stage owns the goroutine feeding its Outlet
// and closes Outlet when its input is exhausted.
type TourStream struct {
	Outlet chan *Tour
}

func NewTourStream() *TourStream {
	stream := &TourStream{
		Outlet: make(chan *Tour),
	}
	return stream
}

// StreamTour sends the given tour and closes.
func StreamTour(T *Tour) *TourStream {
	next := NewTourStream()

	go func() {
		next.Outlet <- T
		next.Close()
	}()

	return next
}

// StreamPaths builds a tour for each of the given path data strings, each on its own graph.
// Paths that fail to build are logged and skipped.
func StreamPaths(pathData []string, opts dotpath.Options) *TourStream {
	next := &TourStream{
		Outlet: make(chan *Tour, 1),
	}

	go func() {
		for i, pd := range pathData {
			T, err := BuildTourFromString(pd, opts)
			if err != nil {
				klog.Errorf("dotpath: path %d: %v", i+1, err)
				continue
			}
			next.Outlet <- T
		}
		next.Close()
	}()

	return next
}

func (stream *TourStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *TourStream) PullTour() *Tour {
	T := <-stream.Outlet
	return T
}

// PullAll drains the stream and returns how many tours were received.
func (stream *TourStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Print writes a labeled line per tour to out, closing out when the stream ends.
//
// Each line is "<label>,<count>," followed by the tour's WriteAsString form.
func (stream *TourStream) Print(out io.WriteCloser, opts dotpath.PrintOpts) *TourStream {
	next := &TourStream{
		Outlet: make(chan *Tour, 1),
	}

	go func() {
		var line bytes.Buffer
		line.Grow(256)

		count := 0
		for T := range stream.Outlet {
			count++
			line.Reset()
			fmt.Fprintf(&line, "%s,%06d,", opts.Label, count)
			T.WriteAsString(&line, opts)
			line.WriteByte('\n')
			if _, err := out.Write(line.Bytes()); err != nil {
				klog.Errorf("dotpath: printing tour %d: %v", count, err)
			}
			next.Outlet <- T
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo passes on only the tours that target accepted.
func (stream *TourStream) AddTo(target dotpath.TourAdder) *TourStream {
	next := &TourStream{
		Outlet: make(chan *Tour, 1),
	}

	go func() {
		for T := range stream.Outlet {
			wasAdded, err := target.TryAddTour(T)
			if err != nil {
				klog.Errorf("dotpath: adding tour %s: %v", T.Fingerprint(), err)
				continue
			}
			if wasAdded {
				next.Outlet <- T
			}
		}
		next.Close()
	}()

	return next
}

// DropDupes passes on only the first tour of each fingerprint.
func (stream *TourStream) DropDupes() *TourStream {
	return stream.AddTo(NewDropDupes(DropDupeOpts{}))
}

// SelectFromCatalog streams every record stored in cat.
func SelectFromCatalog(cat dotpath.Catalog) <-chan *dotpath.TourRecord {
	onHit := make(chan *dotpath.TourRecord, 4)

	go func() {
		if err := cat.Select(onHit); err != nil {
			klog.Errorf("dotpath: catalog select: %v", err)
		}
		close(onHit)
	}()

	return onHit
}
