// Package sysinfo reports static platform facts and current process memory
// statistics. It holds no state; every Collect reads fresh values.
package sysinfo

import (
	"os"
	"runtime"
)

type MemStats struct {
	AllocBytes      uint64 `json:"allocBytes"`
	TotalAllocBytes uint64 `json:"totalAllocBytes"`
	SysBytes        uint64 `json:"sysBytes"`
	NumGC           uint32 `json:"numGC"`
}

type Report struct {
	Platform  string   `json:"platform"`
	OSVersion string   `json:"osVersion"`
	Arch      string   `json:"arch"`
	Hostname  string   `json:"hostname"`
	NumCPU    int      `json:"numCPU"`
	GoVersion string   `json:"goVersion"`
	Memory    MemStats `json:"memory"`
}

func Collect() Report {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return Report{
		Platform:  runtime.GOOS,
		OSVersion: osVersion(),
		Arch:      runtime.GOARCH,
		Hostname:  hostname,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
		Memory: MemStats{
			AllocBytes:      m.Alloc,
			TotalAllocBytes: m.TotalAlloc,
			SysBytes:        m.Sys,
			NumGC:           m.NumGC,
		},
	}
}
