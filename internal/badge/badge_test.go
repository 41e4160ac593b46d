package badge

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate(t *testing.T) {
	tests := []struct {
		count int
		text  string
		color Color
	}{
		{count: 0, text: "0", color: Calm},
		{count: 1, text: "1", color: Attention},
		{count: 12, text: "12", color: Attention},
	}

	for _, tt := range tests {
		m := &Memory{}
		require.NoError(t, Update(m, tt.count))
		text, color, sets := m.Value()
		assert.Equal(t, tt.text, text)
		assert.Equal(t, tt.color, color)
		assert.Equal(t, 1, sets)
	}
}

func TestColorClass(t *testing.T) {
	assert.Equal(t, "calm", Calm.Class())
	assert.Equal(t, "attention", Attention.Class())
}

func TestTerminalBadge_PlainWriter(t *testing.T) {
	var buf bytes.Buffer
	b := NewTerminalBadge(&buf, "Reviews:")

	require.NoError(t, Update(b, 3))
	require.NoError(t, Update(b, 3))
	require.NoError(t, Update(b, 0))

	assert.Equal(t, "Reviews: [3]\nReviews: [0]\n", buf.String())
}

func TestFileBadge_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "badge.txt")
	require.NoError(t, Update(NewFileBadge(path), 4))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "4\n", string(data))
}

func TestFileBadge_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badge.json")
	b := NewFileBadge(path)
	require.NoError(t, Update(b, 2))
	require.NoError(t, Update(b, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got fileBadgeJSON
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "0", got.Text)
	assert.Equal(t, Calm, got.Color)
	assert.Equal(t, "calm", got.Class)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

type failingBadge struct{}

func (failingBadge) Set(string, Color) error { return errors.New("broken") }

func TestMulti(t *testing.T) {
	a, b := &Memory{}, &Memory{}
	require.NoError(t, Update(Multi{a, Nop{}, b}, 5))
	text, _, _ := b.Value()
	assert.Equal(t, "5", text)

	c := &Memory{}
	assert.Error(t, Update(Multi{failingBadge{}, c}, 1))
	_, _, sets := c.Value()
	assert.Zero(t, sets)
}
