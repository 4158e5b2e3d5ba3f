package main

import (
	"fmt"
	"io"
	"time"

	"logtag/internal/driver"
	"logtag/internal/pipeline"
)

func printStageTimings(out io.Writer, results []driver.UnitResult) {
	if out == nil {
		return
	}
	totals := make(map[pipeline.Stage]time.Duration)
	for _, res := range results {
		for _, stage := range []pipeline.Stage{pipeline.StageDecode, pipeline.StageGen, pipeline.StageRewrite, pipeline.StageEncode} {
			if res.Timings.Has(stage) {
				totals[stage] += res.Timings.Duration(stage)
			}
		}
	}
	var printErr error
	if dur, ok := totals[pipeline.StageDecode]; ok {
		_, printErr = fmt.Fprintf(out, "decoded %.1f ms\n", toMillis(dur))
		if printErr != nil {
			panic(printErr)
		}
	}
	if dur, ok := totals[pipeline.StageGen]; ok {
		_, printErr = fmt.Fprintf(out, "generated %.1f ms\n", toMillis(dur))
		if printErr != nil {
			panic(printErr)
		}
	}
	if dur, ok := totals[pipeline.StageRewrite]; ok {
		_, printErr = fmt.Fprintf(out, "rewrote %.1f ms\n", toMillis(dur))
		if printErr != nil {
			panic(printErr)
		}
	}
	if dur, ok := totals[pipeline.StageEncode]; ok {
		_, printErr = fmt.Fprintf(out, "encoded %.1f ms\n", toMillis(dur))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
