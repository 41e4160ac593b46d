package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Console serializes writes from the scheduler, the notification router and
// command output. While held, messages are queued and flushed on Release so
// that a full-screen dashboard is not overdrawn.
type Console struct {
	mu      sync.Mutex
	writer  io.Writer
	held    bool
	pending []string
}

// NewConsole creates a console writing to stdout.
func NewConsole() *Console {
	return &Console{writer: os.Stdout}
}

// NewConsoleWithWriter creates a console with a custom writer.
func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{writer: w}
}

// Hold queues subsequent messages until Release is called.
func (c *Console) Hold() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.held = true
}

// Release flushes queued messages and resumes direct writes.
func (c *Console) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.held = false
	for _, msg := range c.pending {
		fmt.Fprint(c.writer, msg)
	}
	c.pending = nil
}

// Print writes msg, or queues it while the console is held.
func (c *Console) Print(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.held {
		c.pending = append(c.pending, msg)
		return
	}
	fmt.Fprint(c.writer, msg)
}

func (c *Console) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

func (c *Console) Println(msg string) {
	c.Print(msg + "\n")
}

// WriteWithSync runs fn with exclusive access to the underlying writer.
func (c *Console) WriteWithSync(fn func(w io.Writer)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.writer)
}

var globalConsole = NewConsole()

// Stdout returns the process-wide console.
func Stdout() *Console {
	return globalConsole
}

func Print(msg string) { globalConsole.Print(msg) }

func Printf(format string, args ...any) { globalConsole.Printf(format, args...) }

func Println(msg string) { globalConsole.Println(msg) }
