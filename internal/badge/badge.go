// Package badge shows the number of pull requests awaiting the viewer's
// review.
package badge

import (
	"strconv"
	"sync"
)

// Color is a badge background color.
type Color string

const (
	// Calm means nothing is waiting.
	Calm Color = "#44dd44"
	// Attention means at least one review is waiting.
	Attention Color = "#ff0000"
)

// Class names the color for consumers that style by name.
func (c Color) Class() string {
	if c == Calm {
		return "calm"
	}
	return "attention"
}

// Badge displays a short text on a colored background.
type Badge interface {
	Set(text string, color Color) error
}

// ColorFor returns Calm for zero and Attention otherwise.
func ColorFor(count int) Color {
	if count == 0 {
		return Calm
	}
	return Attention
}

// Update shows count on b.
func Update(b Badge, count int) error {
	return b.Set(strconv.Itoa(count), ColorFor(count))
}

// Nop discards updates.
type Nop struct{}

func (Nop) Set(string, Color) error { return nil }

// Memory keeps the last value set.
type Memory struct {
	mu    sync.Mutex
	text  string
	color Color
	sets  int
}

func (m *Memory) Set(text string, color Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.color = text, color
	m.sets++
	return nil
}

// Value returns the last text and color, and how many times Set was called.
func (m *Memory) Value() (string, Color, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, m.color, m.sets
}

// Multi updates every badge in order.
type Multi []Badge

func (m Multi) Set(text string, color Color) error {
	for _, b := range m {
		if err := b.Set(text, color); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Badge = Nop{}
	_ Badge = (*Memory)(nil)
	_ Badge = Multi(nil)
)
