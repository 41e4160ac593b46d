package ui

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_BasicOutput(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWithWriter(&buf)

	console.Print("Hello")
	console.Printf(" %s", "World")
	console.Println("!")

	assert.Equal(t, "Hello World!\n", buf.String())
}

func TestConsole_HoldQueuesUntilRelease(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWithWriter(&buf)

	console.Hold()
	console.Print("Message 1")
	console.Print("Message 2")
	assert.Empty(t, buf.String())

	console.Release()
	assert.Equal(t, "Message 1Message 2", buf.String())

	console.Print("!")
	assert.Equal(t, "Message 1Message 2!", buf.String())
}

func TestConsole_ConcurrentWritesStayWhole(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWithWriter(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			console.Println("line")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Equal(t, "line", line)
	}
}

func TestConsole_WriteWithSync(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWithWriter(&buf)

	console.WriteWithSync(func(w io.Writer) {
		_, _ = io.WriteString(w, "direct")
	})
	assert.Equal(t, "direct", buf.String())
}
