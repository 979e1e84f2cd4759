// Package prompt — консольные вопросы оператору: меню режимов, код входа, пароль 2FA.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type answer struct {
	line string
	err  error
}

// Console читает ответы построчно из in и печатает вопросы в out.
// Ввод читает одна фоновая горутина; строка, введённая после отмены Ask,
// достаётся следующему Ask.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	once    sync.Once
	answers chan answer
}

// NewConsole создаёт консоль поверх произвольных потоков.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out, answers: make(chan answer)}
}

func (c *Console) readLoop() {
	for {
		line, err := c.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		c.answers <- answer{strings.TrimSpace(line), err}
		if err != nil {
			close(c.answers)
			return
		}
	}
}

// Ask печатает вопрос и ждёт строку ответа. Отмена контекста прерывает ожидание.
func (c *Console) Ask(ctx context.Context, question string) (string, error) {
	fmt.Fprint(c.out, question)
	c.once.Do(func() { go c.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-c.answers:
		if !ok {
			return "", io.EOF
		}
		return a.line, a.err
	}
}

// Menu печатает пронумерованные пункты и возвращает выбранный номер как строку.
func (c *Console) Menu(ctx context.Context, title string, items ...string) (string, error) {
	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(c.out, title)
	for i, item := range items {
		fmt.Fprintf(c.out, "    %d. %s\n", i+1, item)
	}
	return c.Ask(ctx, "Input number: ")
}

// Code спрашивает одноразовый код входа.
func (c *Console) Code(ctx context.Context, phone string) (string, error) {
	return c.Ask(ctx, fmt.Sprintf("Input login code for %s: ", phone))
}

// Password спрашивает пароль двухфакторной авторизации.
func (c *Console) Password(ctx context.Context, phone string) (string, error) {
	return c.Ask(ctx, fmt.Sprintf("Input password 2FA for %s: ", phone))
}
