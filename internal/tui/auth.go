package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/maglo/maglo/pkg/client"
	"github.com/maglo/maglo/pkg/domain"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

type authField int

const (
	fieldFullName authField = iota
	fieldEmail
	fieldPassword
	numAuthFields

	minPasswordLen = 8
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// authDoneMsg carries the outcome of a sign-in or sign-up call.
type authDoneMsg struct {
	mode   authMode
	result *client.AuthResult
	user   *domain.User
	err    error
}

type authModel struct {
	client     *client.Client
	mode       authMode
	fields     [numAuthFields]string
	focus      authField
	fieldErrs  map[string]string
	errMsg     string
	statusMsg  string
	submitting bool
	width      int
	height     int
}

func newAuthModel(c *client.Client) authModel {
	return authModel{client: c, focus: fieldEmail}
}

func (m authModel) Init() tea.Cmd {
	return nil
}

// firstField is where focus lands when the form resets; sign-in has no
// full-name field.
func (m authModel) firstField() authField {
	if m.mode == modeSignUp {
		return fieldFullName
	}
	return fieldEmail
}

func (m authModel) nextField(f authField, delta int) authField {
	n := int(numAuthFields)
	f = authField((int(f) + delta + n) % n)
	if m.mode == modeSignIn && f == fieldFullName {
		f = authField((int(f) + delta + n) % n)
	}
	return f
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.fieldErrs = nil
			var authErr *client.AuthError
			if errors.As(msg.err, &authErr) {
				m.fieldErrs = authErr.FieldMessages()
			}
			m.errMsg = msg.err.Error()
			return m, nil
		}
		if msg.mode == modeSignUp {
			// Registration does not sign the user in; drop back to the
			// sign-in form with the email prefilled.
			m.mode = modeSignIn
			m.fields[fieldPassword] = ""
			m.focus = fieldPassword
			m.statusMsg = "account created — sign in to continue"
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m authModel) updateKeys(msg tea.KeyMsg) (authModel, tea.Cmd) {
	m.errMsg = ""
	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+t":
		m.toggleMode()
		return m, nil
	case "tab", "down":
		m.focus = m.nextField(m.focus, 1)
	case "shift+tab", "up":
		m.focus = m.nextField(m.focus, -1)
	case "enter":
		if m.focus == fieldPassword {
			return m.submit()
		}
		m.focus = m.nextField(m.focus, 1)
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
		delete(m.fieldErrs, fieldKey(m.focus))
	default:
		key := msg.String()
		if utf8.RuneCountInString(key) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
			delete(m.fieldErrs, fieldKey(m.focus))
		}
	}
	return m, nil
}

func (m *authModel) toggleMode() {
	if m.mode == modeSignIn {
		m.mode = modeSignUp
	} else {
		m.mode = modeSignIn
	}
	m.fieldErrs = nil
	m.errMsg = ""
	m.focus = m.firstField()
}

// fieldKey maps a form field to the key the API uses in validation details.
func fieldKey(f authField) string {
	switch f {
	case fieldFullName:
		return "fullName"
	case fieldEmail:
		return "email"
	default:
		return "password"
	}
}

// validate runs the client-side checks before any network call.
func (m authModel) validate() map[string]string {
	errs := map[string]string{}
	if m.mode == modeSignUp && strings.TrimSpace(m.fields[fieldFullName]) == "" {
		errs["fullName"] = "full name is required"
	}
	email := strings.TrimSpace(m.fields[fieldEmail])
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailRe.MatchString(email) {
		errs["email"] = "enter a valid email address"
	}
	if pw := m.fields[fieldPassword]; pw == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(pw) < minPasswordLen {
		errs["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLen)
	}
	return errs
}

func (m authModel) submit() (authModel, tea.Cmd) {
	if errs := m.validate(); len(errs) > 0 {
		m.fieldErrs = errs
		return m, nil
	}

	m.submitting = true
	mode := m.mode
	c := m.client
	fullName := strings.TrimSpace(m.fields[fieldFullName])
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]

	return m, func() tea.Msg {
		if mode == modeSignUp {
			user, err := c.SignUp(context.Background(), fullName, email, password)
			return authDoneMsg{mode: mode, user: user, err: err}
		}
		result, err := c.SignIn(context.Background(), email, password)
		return authDoneMsg{mode: mode, result: result, err: err}
	}
}

func (m authModel) View() string {
	var b strings.Builder

	title := "Sign In"
	hint := "ctrl+t to create an account"
	if m.mode == modeSignUp {
		title = "Sign Up"
		hint = "ctrl+t to sign in instead"
	}
	fmt.Fprintf(&b, "  %s  %s\n\n", selectedStyle.Render(title), metaStyle.Render(hint))

	labels := [numAuthFields]string{"full name", "email", "password"}
	for f := authField(0); f < numAuthFields; f++ {
		if m.mode == modeSignIn && f == fieldFullName {
			continue
		}
		cursor := " "
		style := metaStyle
		if f == m.focus {
			cursor = inputPromptStyle.Render(">")
			style = selectedStyle
		}

		value := m.fields[f]
		if f == fieldPassword {
			value = mask(value)
		}
		if f == m.focus {
			value += accentStyle.Render("█")
		} else if m.fields[f] == "" {
			value = inputPlaceholderStyle.Render(labels[f] + "...")
		}
		fmt.Fprintf(&b, "  %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-9s", labels[f])), value)

		if msg, ok := m.fieldErrs[fieldKey(f)]; ok {
			fmt.Fprintf(&b, "      %s\n", fieldErrStyle.Render(msg))
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render("signing in..."))
	case m.errMsg != "":
		fmt.Fprintf(&b, "  %s\n", errorStyle.Render(m.errMsg))
	case m.statusMsg != "":
		fmt.Fprintf(&b, "  %s\n", successStyle.Render(m.statusMsg))
	}

	return b.String()
}
