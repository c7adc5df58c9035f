//go:build windows

package proc

import (
	"syscall"
	"unsafe"
)

// getProcStartUnix returns the process creation time as Unix seconds.
// Returns 0 on error.
func getProcStartUnix(pid int) int64 {
	if pid <= 0 {
		return 0
	}
	h, err := syscall.OpenProcess(syscall.PROCESS_QUERY_INFORMATION, false, uint32(pid))
	if err != nil {
		return 0
	}
	defer func() { _ = syscall.CloseHandle(h) }()

	var creation, exit, kernel, user syscall.Filetime
	procGetProcessTimes := kernel32.NewProc("GetProcessTimes")
	ret, _, _ := procGetProcessTimes.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&creation)),
		uintptr(unsafe.Pointer(&exit)),
		uintptr(unsafe.Pointer(&kernel)),
		uintptr(unsafe.Pointer(&user)),
	)
	if ret == 0 {
		return 0
	}
	// FILETIME is in 100-ns intervals since Jan 1, 1601 (UTC)
	const ticksPerSecond = 10000000
	const epochDiff = 11644473600 // seconds between 1601-01-01 and 1970-01-01
	ft := (uint64(creation.HighDateTime) << 32) | uint64(creation.LowDateTime)
	return int64(ft/ticksPerSecond) - epochDiff
}
