//go:build darwin

package notification

func browserCommand(url string) (string, []string) {
	return "open", []string{url}
}
