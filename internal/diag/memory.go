// Package diag provides best-effort, non-fatal operational advisories.
// Nothing here ever changes a pipeline's outcome — it only decides
// whether to print a warning.
package diag

import (
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v3/mem"
)

// LargePipelineStages is the stage count at or above which WarnIfLowMemory
// bothers checking at all; ordinary pipelines never pay the syscall.
const LargePipelineStages = 8

// WarnIfLowMemory prints a one-line advisory to w if the system is
// under memory pressure before launching an unusually large pipeline.
// Mirrors the teacher's CheckMemoryForFile threshold check, adapted
// from "large file" to "large pipeline fan-out"; a failure to read
// memory stats is silently ignored; this is advisory only.
func WarnIfLowMemory(w io.Writer, stageCount int) {
	if stageCount < LargePipelineStages {
		return
	}

	v, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	if v.UsedPercent >= 90 {
		fmt.Fprintf(w, "posh: system memory at %.0f%% use before starting a %d-stage pipeline\n", v.UsedPercent, stageCount)
	}
}
