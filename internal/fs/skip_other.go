//go:build !windows

package fs

func skipListing(_, _ string) bool {
	return false
}
