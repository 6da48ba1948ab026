package launcher

import (
	"bufio"
	"io"
	"sync"
)

// LogLine is one line of child output with its source label
type LogLine struct {
	Source string // "api" or "web"
	Text   string
}

// Relay fans the output of both children into a single channel so the
// printer sees interleaved, line-granular output from each server.
type Relay struct {
	channel chan LogLine
	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewRelay creates a Relay with a buffered fan-in channel
func NewRelay(bufferSize int) *Relay {
	return &Relay{
		channel: make(chan LogLine, bufferSize),
	}
}

// Channel returns the read-only fan-in channel. It is closed by Stop
// after all attached readers have drained.
func (r *Relay) Channel() <-chan LogLine {
	return r.channel
}

// Attach starts relaying lines from the reader under the given source
// label. The goroutine exits when the reader hits EOF or an error,
// which for a PTY happens when the child dies.
func (r *Relay) Attach(source string, reader io.Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped || reader == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), 256*1024)
		for scanner.Scan() {
			r.send(LogLine{Source: source, Text: scanner.Text()})
		}
	}()
}

// send delivers a line without ever blocking shutdown: once the buffer
// is full during teardown the line is dropped.
func (r *Relay) send(line LogLine) {
	r.mu.Lock()
	stopped := r.stopped
	r.mu.Unlock()

	if stopped {
		return
	}

	select {
	case r.channel <- line:
	default:
		// Drop the line rather than deadlock a dying reader
	}
}

// Stop waits for all attached readers to finish and closes the channel.
// Safe to call more than once.
func (r *Relay) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	// Wait for producers before closing the channel
	r.wg.Wait()
	close(r.channel)
}
