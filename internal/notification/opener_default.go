//go:build !linux && !darwin && !windows

package notification

func browserCommand(url string) (string, []string) {
	return "xdg-open", []string{url}
}
