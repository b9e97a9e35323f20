//go:build !unix

package sysinfo

import "runtime"

func osVersion() string {
	return runtime.GOOS
}
