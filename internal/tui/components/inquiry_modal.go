package components

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-playground/validator/v10"
	"github.com/suhanovs/paintx-frontend/internal/domain"
	"github.com/suhanovs/paintx-frontend/internal/tui/styles"
)

// inquiryForm carries the same rules the storefront proxy enforces.
type inquiryForm struct {
	Email   string `validate:"required,email,max=254"`
	Comment string `validate:"max=5000"`
}

var inquiryValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateInquiry trims in and checks it. The returned message is meant
// for the user.
func ValidateInquiry(in domain.Inquiry) (domain.Inquiry, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Comment = strings.TrimSpace(in.Comment)

	err := inquiryValidator.Struct(inquiryForm{Email: in.Email, Comment: in.Comment})
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch fe := verrs[0]; {
		case fe.Field() == "Email" && fe.Tag() == "required":
			return in, errors.New("email is required")
		case fe.Field() == "Email":
			return in, errors.New("enter a valid email address")
		default:
			return in, errors.New("message is too long")
		}
	}
	return in, err
}

// InquiryModal collects a contact request: an email and a free comment.
type InquiryModal struct {
	visible bool
	subject string
	email   textinput.Model
	comment textarea.Model
	focus   int // 0 email, 1 comment
	err     string
}

// NewInquiryModal creates a new inquiry modal
func NewInquiryModal() InquiryModal {
	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.CharLimit = 254
	ti.Width = 44
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	ta := textarea.New()
	ta.Placeholder = "What would you like to know?"
	ta.CharLimit = 5000
	ta.ShowLineNumbers = false
	ta.SetWidth(46)
	ta.SetHeight(5)

	return InquiryModal{email: ti, comment: ta}
}

// Show opens the modal. subject names the painting the inquiry is about,
// or is empty for a general request.
func (m *InquiryModal) Show(subject string) {
	m.visible = true
	m.subject = subject
	m.err = ""
	m.email.SetValue("")
	m.comment.SetValue("")
	if subject != "" {
		m.comment.SetValue("I am interested in " + subject + ".")
	}
	m.focus = 0
	m.email.Focus()
	m.comment.Blur()
}

// Hide dismisses the modal
func (m *InquiryModal) Hide() {
	m.visible = false
	m.email.Blur()
	m.comment.Blur()
}

// IsVisible returns whether the modal is shown
func (m InquiryModal) IsVisible() bool {
	return m.visible
}

// SetError shows a message under the form.
func (m *InquiryModal) SetError(msg string) {
	m.err = msg
}

// Update handles input events. It returns a non-nil inquiry once the
// user submits a valid form with ctrl+s.
func (m InquiryModal) Update(msg tea.Msg) (InquiryModal, tea.Cmd, *domain.Inquiry) {
	if !m.visible {
		return m, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, nil, nil
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil, nil
		case "enter":
			if m.focus == 0 {
				m.toggleFocus()
				return m, nil, nil
			}
		case "ctrl+s":
			in, err := ValidateInquiry(domain.Inquiry{Email: m.email.Value(), Comment: m.comment.Value()})
			if err != nil {
				m.err = err.Error()
				return m, nil, nil
			}
			m.Hide()
			return m, nil, &in
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.comment, cmd = m.comment.Update(msg)
	}
	return m, cmd, nil
}

func (m *InquiryModal) toggleFocus() {
	if m.focus == 0 {
		m.focus = 1
		m.email.Blur()
		m.comment.Focus()
		return
	}
	m.focus = 0
	m.comment.Blur()
	m.email.Focus()
}

// View renders the inquiry modal
func (m InquiryModal) View() string {
	if !m.visible {
		return ""
	}

	title := "Contact the gallery"
	if m.subject != "" {
		title = "Ask about " + styles.Truncate(m.subject, 30)
	}

	label := func(s string, focused bool) string {
		if focused {
			return styles.AccentStyle.Render(s)
		}
		return styles.DimStyle.Render(s)
	}

	parts := []string{
		styles.ModalTitleStyle.Render(title),
		label("Email", m.focus == 0),
		m.email.View(),
		"",
		label("Message", m.focus == 1),
		m.comment.View(),
		"",
	}
	if m.err != "" {
		parts = append(parts, styles.ErrorStyle.Render(m.err))
	}
	parts = append(parts,
		styles.HelpKeyStyle.Render("tab")+styles.HelpDescStyle.Render(" switch  ")+
			styles.HelpKeyStyle.Render("ctrl+s")+styles.HelpDescStyle.Render(" send  ")+
			styles.HelpKeyStyle.Render("esc")+styles.HelpDescStyle.Render(" cancel"))

	return styles.ModalStyle.Render(strings.Join(parts, "\n"))
}
