//go:build !windows

package shellsetup

import (
	"fmt"
	"os"
	"strings"
)

// DetectParentShellName names the parent process on Linux via /proc. Other
// Unix systems rely on $SHELL instead and get "".
func DetectParentShellName() string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", os.Getppid()))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
