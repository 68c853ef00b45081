package console

import (
	"XuBank/internal/core/ports"
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Session is a line-oriented ports.Prompter over a reader and a writer.
type Session struct {
	ID  uuid.UUID
	in  *bufio.Scanner
	out io.Writer
}

var _ ports.Prompter = (*Session)(nil)

func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{
		ID:  uuid.New(),
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (s *Session) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(s.out, label)

	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

func (s *Session) Say(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
