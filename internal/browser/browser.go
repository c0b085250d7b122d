// Package browser opens URLs in the system default browser.
package browser

import (
	"os/exec"
	"runtime"
)

// Open launches the default browser for url. The command is started and not
// waited on; a missing opener on an unknown platform is silently ignored.
func Open(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
