package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	errNoPassword       = errors.New("no password given: use --password-env or run in a terminal")
	errPasswordMismatch = errors.New("passwords do not match")
)

// prompter reads passwords without echo when attached to a terminal and
// line by line otherwise.
type prompter struct {
	in  io.Reader
	out io.Writer

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
	lines        *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{
		in:           in,
		out:          out,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

func (p *prompter) fd() (int, bool) {
	f, ok := p.in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, p.isTerminal(fd)
}

// password resolves a password from envVar when set, otherwise prompts.
func (p *prompter) password(label, envVar string) (string, error) {
	if envVar != "" {
		pw, ok := os.LookupEnv(envVar)
		if !ok || pw == "" {
			return "", fmt.Errorf("environment variable %s is empty", envVar)
		}
		return pw, nil
	}

	fd, tty := p.fd()
	if !tty {
		return "", errNoPassword
	}
	fmt.Fprint(p.out, label+": ")
	pw, err := p.readPassword(fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	if len(pw) == 0 {
		return "", errNoPassword
	}
	return string(pw), nil
}

// newPassword is password with confirmation when prompting.
func (p *prompter) newPassword(envVar string) (string, error) {
	pw, err := p.password("New password", envVar)
	if err != nil || envVar != "" {
		return pw, err
	}
	again, err := p.password("Repeat password", "")
	if err != nil {
		return "", err
	}
	if again != pw {
		return "", errPasswordMismatch
	}
	return pw, nil
}

// line reads one trimmed line of input.
func (p *prompter) line() (string, error) {
	if p.lines == nil {
		p.lines = bufio.NewReader(p.in)
	}
	s, err := p.lines.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
