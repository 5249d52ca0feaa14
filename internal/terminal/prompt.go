package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyInput is returned when a prompt receives no value.
var ErrEmptyInput = errors.New("no value entered")

// ReadSecret prints prompt and reads a line without echo. When stdin is not a
// terminal the line is read as-is, so values can be piped in.
func ReadSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stdout, prompt)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(os.Stdin)
	}

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", err
	}
	ClearPreviousLines(len(prompt))

	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", ErrEmptyInput
	}
	return v, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	v := strings.TrimSpace(line)
	if v == "" {
		return "", ErrEmptyInput
	}
	return v, nil
}
