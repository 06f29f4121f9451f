// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user backs out of a dialog.
var ErrAborted = errors.New("aborted")

var promptStyle = lipgloss.NewStyle().Bold(true)

// Credentials collects a username and password. On a TTY it runs the
// interactive form; otherwise it falls back to reading stdin (password
// without echo when possible). A non-empty username skips that field.
func Credentials(username string) (string, string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return credentialsPlain(username)
	}

	m := newLoginModel(username)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", "", fmt.Errorf("failed to run login form: %w", err)
	}

	lm := final.(loginModel)
	if lm.aborted {
		return "", "", ErrAborted
	}

	return lm.username(), lm.password(), nil
}

func credentialsPlain(username string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Fprint(os.Stderr, "Password: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", "", fmt.Errorf("failed to read password: %w", err)
		}
		return username, string(raw), nil
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("failed to read password: %w", err)
	}

	return username, strings.TrimSpace(line), nil
}

// loginModel is a two-field form. Enter advances; enter on the last field
// submits. Esc or ctrl+c aborts.
type loginModel struct {
	inputs  []textinput.Model
	focus   int
	aborted bool
}

func newLoginModel(username string) loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 50

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	m := loginModel{inputs: []textinput.Model{user, pass}}

	if username != "" {
		m.inputs[0].SetValue(username)
		m.focus = 1
	}
	m.inputs[m.focus].Focus()

	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.focus == len(m.inputs)-1 {
				return m, tea.Quit
			}
			m.inputs[m.focus].Blur()
			m.focus++
			m.inputs[m.focus].Focus()
			return m, textinput.Blink
		case tea.KeyTab:
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render("Log in") + "\n\n")
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View() + "\n")
	}
	b.WriteString("\n(enter to submit, esc to abort)\n")
	return b.String()
}

func (m loginModel) username() string { return strings.TrimSpace(m.inputs[0].Value()) }
func (m loginModel) password() string { return m.inputs[1].Value() }
