package platform

// ButtonStyle mirrors the platform's button render styles.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota
	ButtonSuccess
	ButtonDanger
	ButtonSecondary
	ButtonLink
)

// Control is an interactive element attached to a message or modal.
// Variants: *Button, *SelectMenu, *TextField, *Modal.
type Control interface {
	ControlID() string
}

// Disableable is the capability of controls that can be switched off in
// place. Once a control disables itself it is never re-enabled.
type Disableable interface {
	Control
	SetDisabled(disabled bool)
	IsDisabled() bool
}

// Button is a clickable message control.
type Button struct {
	ID       string
	Label    string
	Emoji    string
	Style    ButtonStyle
	URL      string // link buttons only; no custom id is sent
	Disabled bool
}

func (b *Button) ControlID() string         { return b.ID }
func (b *Button) SetDisabled(disabled bool) { b.Disabled = disabled }
func (b *Button) IsDisabled() bool          { return b.Disabled }

// SelectOption is one entry of a SelectMenu.
type SelectOption struct {
	Label string
	Value string
	Emoji string
}

// SelectMenu is a single-choice dropdown control.
type SelectMenu struct {
	ID          string
	Placeholder string
	Options     []SelectOption
	Disabled    bool
}

func (s *SelectMenu) ControlID() string         { return s.ID }
func (s *SelectMenu) SetDisabled(disabled bool) { s.Disabled = disabled }
func (s *SelectMenu) IsDisabled() bool          { return s.Disabled }

// TextField is a free-text input inside a modal. Length bounds are
// enforced client-side by the platform; semantic validation stays with
// the intake form.
type TextField struct {
	ID          string
	Label       string
	Placeholder string
	Required    bool
	MinLen      int
	MaxLen      int
	Paragraph   bool
}

func (t *TextField) ControlID() string { return t.ID }

// Modal is a structured input form presented in response to an interaction.
type Modal struct {
	ID     string
	Title  string
	Fields []*TextField
}

func (m *Modal) ControlID() string { return m.ID }

// DisableAll flips every disableable control in the set. Controls without
// the capability are left alone.
func DisableAll(controls []Control) {
	for _, control := range controls {
		if d, ok := control.(Disableable); ok {
			d.SetDisabled(true)
		}
	}
}

// FindControl returns the control with the given id, or nil.
func FindControl(controls []Control, id string) Control {
	for _, control := range controls {
		if control.ControlID() == id {
			return control
		}
	}
	return nil
}
