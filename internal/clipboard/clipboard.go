// Package clipboard copies compiled prompts to the system clipboard via
// the platform's native utility.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoUtility is returned when no clipboard utility can be found.
var ErrNoUtility = errors.New("no clipboard utility found")

// linux utilities tried in order
var linuxUtilities = []struct {
	name string
	args []string
}{
	{"xclip", []string{"-selection", "clipboard"}},
	{"xsel", []string{"--clipboard", "--input"}},
	{"wl-copy", nil},
}

// Copy copies text to the system clipboard
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipe("pbcopy", nil, text)
	case "linux":
		return copyLinux(text)
	case "windows":
		return pipe("cmd", []string{"/c", "clip"}, text)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func copyLinux(text string) error {
	var lastErr error
	for _, util := range linuxUtilities {
		if !commandAvailable(util.name) {
			continue
		}
		if err := pipe(util.name, util.args, text); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", util.name, err)
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%w: install xclip, xsel, or wl-clipboard", ErrNoUtility)
}

func pipe(name string, args []string, text string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// CopyWithFallback attempts to copy to clipboard and returns a status
// message suitable for direct display.
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		if errors.Is(err, ErrNoUtility) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsClipboardAvailable checks if clipboard functionality is available
func IsClipboardAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return commandAvailable("pbcopy")
	case "linux":
		for _, util := range linuxUtilities {
			if commandAvailable(util.name) {
				return true
			}
		}
		return false
	case "windows":
		return true
	default:
		return false
	}
}
