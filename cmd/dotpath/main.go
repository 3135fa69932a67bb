package main

import (
	"bufio"
	"flag"
	"io"
	"os"
	"strings"

	"github.com/2x3systems/dotpath/dotpath"
	"github.com/2x3systems/dotpath/libdot"
	"github.com/2x3systems/dotpath/libdot/catalog"
	"github.com/plan-systems/klog"
)

var (
	gPathData   = flag.String("d", "", "SVG path data to traverse")
	gConfig     = flag.String("config", "", "YAML options file (tolerance, flatness)")
	gCatalogDir = flag.String("catalog", "", "catalog directory to store tours in")
	gAsJSON     = flag.Bool("json", false, "write each tour as JSON")
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "1")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "1")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	status := 0
	if pathname := flag.Arg(0); strings.HasSuffix(pathname, ".py") {
		go_gpython(pathname)
	} else if err := run(flag.Args()); err != nil {
		klog.Errorf("dotpath: %v", err)
		status = 1
	}

	klog.Flush()
	os.Exit(status)
}

func run(files []string) error {
	opts := dotpath.DefaultOptions
	if *gConfig != "" {
		file, err := os.Open(*gConfig)
		if err != nil {
			return err
		}
		opts, err = libdot.LoadOptions(file)
		file.Close()
		if err != nil {
			return err
		}
	}

	var pathData []string
	if *gPathData != "" {
		pathData = append(pathData, *gPathData)
	}
	for _, pathname := range files {
		lines, err := readPathData(pathname)
		if err != nil {
			return err
		}
		pathData = append(pathData, lines...)
	}

	stream := libdot.StreamPaths(pathData, opts)

	if *gCatalogDir != "" {
		ctx := dotpath.NewCatalogContext()
		defer func() {
			ctx.Close()
			<-ctx.Done()
		}()

		cat, err := catalog.OpenCatalog(ctx, dotpath.CatalogOpts{
			DbPathName: *gCatalogDir,
		})
		if err != nil {
			return err
		}
		defer cat.Close()

		stream = stream.AddTo(cat)
	}

	if *gAsJSON {
		for T := range stream.Outlet {
			if err := T.WriteJSON(os.Stdout); err != nil {
				return err
			}
		}
		return nil
	}

	count := stream.Print(nopCloser{os.Stdout}, dotpath.DefaultPrintOpts).PullAll()
	klog.V(1).Infof("dotpath: %d tours", count)
	return nil
}

// readPathData reads one path per non-empty line; lines starting with '#' are skipped.
func readPathData(pathname string) ([]string, error) {
	file, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var pathData []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		pathData = append(pathData, line)
	}
	return pathData, scanner.Err()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
