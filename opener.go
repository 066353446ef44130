package main

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openerCommand returns the command that opens path in the default
// application of goos
func openerCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("opening files is not supported on %s", goos)
	}
}

// openReport starts the platform opener for path without waiting for it
func openReport(path string) error {
	cmd, err := openerCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open report: %w", err)
	}
	go cmd.Wait()
	return nil
}
