package handler

// InputField is the view model behind the shared input partial: a labelled
// field with an optional leading icon, an error message or helper text
// beneath it (error wins), and a password-specific visibility toggle. It
// never validates its own content; that belongs to the submission step.
type InputField struct {
	Name        string
	Label       string
	Type        string // "text", "email", "password"
	Value       string
	Placeholder string
	Icon        string
	Required    bool
	Error       string
	HelperText  string

	// Reveal renders a password field as plain text for this render pass.
	// Local transient state only; defaults to hidden.
	Reveal bool
}

// Message returns the text shown beneath the field: the error when present,
// the helper text otherwise.
func (f InputField) Message() string {
	if f.Error != "" {
		return f.Error
	}
	return f.HelperText
}

// HasError reports whether the message is an error (for styling).
func (f InputField) HasError() bool {
	return f.Error != ""
}

// InputType resolves the rendered type attribute, honouring the password
// visibility toggle.
func (f InputField) InputType() string {
	if f.Type == "password" && f.Reveal {
		return "text"
	}
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

// IsPassword reports whether the field should render a visibility toggle.
func (f InputField) IsPassword() bool {
	return f.Type == "password"
}

// Option is one {value, label} pair of a closed-set choice.
type Option struct {
	Value string
	Label string
}

// SelectField is the view model behind the shared select partial: a
// labelled closed-set choice rendered from an ordered option list. It holds
// no internal state.
type SelectField struct {
	Name     string
	Label    string
	Value    string
	Options  []Option
	Error    string
	Required bool
}

// Selected reports whether the given option value is the current one.
func (f SelectField) Selected(value string) bool {
	return f.Value == value
}
