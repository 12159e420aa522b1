package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// StatementReader reads semicolon-terminated statements from an interactive
// shell without blocking context cancellation.
type StatementReader struct {
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewStatementReader wraps r.
func NewStatementReader(r io.Reader) *StatementReader {
	return &StatementReader{reader: bufio.NewReader(r)}
}

// ReadLine reads one trimmed line. The underlying read keeps running after
// cancellation; its result is discarded.
func (r *StatementReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	ch := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		value, err := r.reader.ReadString('\n')
		ch <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-ch:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.value != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// ReadStatement accumulates lines until one ends with ";" and returns the
// statement without it. prompt is called before each line with whether the
// statement is a continuation.
func (r *StatementReader) ReadStatement(ctx context.Context, prompt func(continuation bool)) (string, error) {
	var parts []string
	for {
		if prompt != nil {
			prompt(len(parts) > 0)
		}
		line, err := r.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) && len(parts) > 0 {
				return strings.Join(parts, " "), nil
			}
			return "", err
		}
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ";") {
			parts = append(parts, strings.TrimSpace(strings.TrimSuffix(line, ";")))
			return strings.TrimSpace(strings.Join(parts, " ")), nil
		}
		parts = append(parts, line)
	}
}
