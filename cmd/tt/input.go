package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

type lineInput interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

type basicLineInput struct {
	reader *bufio.Reader
	out    io.Writer
}

func newBasicLineInput(in io.Reader, out io.Writer) *basicLineInput {
	return &basicLineInput{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (b *basicLineInput) ReadLine(prompt string) (string, error) {
	if b.out != nil {
		fmt.Fprint(b.out, prompt)
	}
	line, err := b.reader.ReadString('\n')
	if err != nil {
		// 最后一行没有换行符时仍然返回内容 / keep a final unterminated line
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (b *basicLineInput) Close() error { return nil }

type readlineInput struct {
	instance *readline.Instance
}

func newReadlineInput(stdin io.ReadCloser, stdout io.Writer) (*readlineInput, error) {
	instance, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		Stdin:           stdin,
		Stdout:          stdout,
		HistoryLimit:    -1,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return nil, err
	}
	return &readlineInput{instance: instance}, nil
}

func (r *readlineInput) ReadLine(prompt string) (string, error) {
	r.instance.SetPrompt(prompt)
	return r.instance.Readline()
}

func (r *readlineInput) Close() error {
	if r == nil || r.instance == nil {
		return nil
	}
	return r.instance.Close()
}

// newLineInput 终端上使用 readline，否则退回按行读取
// newLineInput uses readline on a terminal and falls back to plain line reads.
func newLineInput(stdin io.Reader, stdout io.Writer) lineInput {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if in, err := newReadlineInput(f, stdout); err == nil {
			return in
		}
	}
	return newBasicLineInput(stdin, stdout)
}

// isTerminal 判断是否可以向用户提问
func isTerminal(stdin io.Reader) bool {
	f, ok := stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// askYesNo 读取一行回答；中断或 EOF 视为否
// askYesNo reads one answer; interrupt and EOF count as no.
func askYesNo(in lineInput, prompt string) (bool, error) {
	line, err := in.ReadLine(prompt)
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes" || answer == "是", nil
}
