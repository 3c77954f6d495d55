package main

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Commands that hand a URL to the desktop's default browser.
const (
	openCommand    = "open"
	xdgOpenCommand = "xdg-open"
	rundllCommand  = "rundll32"
	rundllHandler  = "url.dll,FileProtocolHandler"
)

// browserCommand builds the command that opens target on goos.
func browserCommand(goos, target string) (*exec.Cmd, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("refusing to open %q: scheme %q", target, u.Scheme)
	}

	switch goos {
	case "darwin":
		return exec.Command(openCommand, target), nil
	case "windows":
		return exec.Command(rundllCommand, rundllHandler, target), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command(xdgOpenCommand, target), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// openInBrowser starts the default browser on target without waiting for it.
func openInBrowser(target string) error {
	cmd, err := browserCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
