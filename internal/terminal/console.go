// Package terminal is the operator-facing side of the POS: an
// interactive prompt that feeds the lifecycle manager and prints its
// notices.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console reads operator input and prints notices. It implements the
// manager's Confirmer and Notifier.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

// NewConsole wraps an input stream and an output writer.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Confirm presents a title and message and waits for a yes/no answer.
// Anything other than "s"/"sim" cancels.
func (c *Console) Confirm(title, message string) bool {
	fmt.Fprintf(c.out, "\n%s\n%s\n", title, message)
	answer := strings.ToLower(c.ReadLine("Confirmar? (s/n): "))
	return answer == "s" || answer == "sim"
}

// Success prints a success notice.
func (c *Console) Success(msg string) {
	fmt.Fprintf(c.out, "[OK] %s\n", msg)
}

// Error prints an error notice.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.out, "[ERRO] %s\n", msg)
}

// ReadLine prints a prompt and returns the trimmed answer, or "" on EOF.
func (c *Console) ReadLine(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// EOF reports whether the input stream is exhausted.
func (c *Console) EOF() bool {
	return c.eof
}
