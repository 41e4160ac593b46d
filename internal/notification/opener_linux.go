//go:build linux

package notification

func browserCommand(url string) (string, []string) {
	return "xdg-open", []string{url}
}
