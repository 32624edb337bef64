//go:build windows

package fs

import "syscall"

const (
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// skipListing hides protected system junctions (e.g. "Application Data"
// inside a profile) that always fail to open.
func skipListing(fullPath, _ string) bool {
	if fullPath == "" {
		return false
	}
	ptr, err := syscall.UTF16PtrFromString(fullPath)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
