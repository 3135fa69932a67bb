package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/dotpath/pydot"
	_ "github.com/go-python/gpython/stdlib"
)

func go_gpython(pathname string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	startTime := time.Now()
	fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

	_, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil)
	if err == nil {
		fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		klog.Fatalf("dotpath: %v", err)
	}
}
