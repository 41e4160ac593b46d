package badge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileBadge writes the badge to a file for status bars to poll. A path
// ending in .json gets a waybar-style object; any other path gets the bare
// text.
type FileBadge struct {
	path string
}

func NewFileBadge(path string) *FileBadge {
	return &FileBadge{path: path}
}

type fileBadgeJSON struct {
	Text    string `json:"text"`
	Color   Color  `json:"color"`
	Class   string `json:"class"`
	Tooltip string `json:"tooltip"`
}

func (b *FileBadge) Set(text string, color Color) error {
	var data []byte
	if strings.EqualFold(filepath.Ext(b.path), ".json") {
		var err error
		data, err = json.Marshal(fileBadgeJSON{
			Text:    text,
			Color:   color,
			Class:   color.Class(),
			Tooltip: text + " pull request(s) awaiting your review",
		})
		if err != nil {
			return fmt.Errorf("failed to encode badge: %w", err)
		}
	} else {
		data = []byte(text)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("failed to create badge directory: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write badge: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write badge: %w", err)
	}
	return nil
}

var _ Badge = (*FileBadge)(nil)
