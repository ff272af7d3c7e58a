package handler

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/csrf"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/api/metrics"
	"github.com/enterprisehub/portal/internal/core/domain"
	"github.com/enterprisehub/portal/internal/core/navigation"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// DemoAccount is a known local demo credential pair. Selecting one only
// pre-fills the form; it never performs a network call or touches the
// session.
type DemoAccount struct {
	Tag      string
	Label    string
	Email    string
	Password string
}

var demoAccounts = []DemoAccount{
	{Tag: "employee", Label: "Employee", Email: "test@company.com", Password: "Test123!"},
	{Tag: "admin", Label: "Admin", Email: "admin@company.com", Password: "Admin123!"},
	{Tag: "manager", Label: "Manager", Email: "manager@company.com", Password: "Manager123!"},
}

// DemoCredentials returns the fixed credentials for a demo role tag.
func DemoCredentials(tag string) (email, password string, ok bool) {
	for _, a := range demoAccounts {
		if a.Tag == tag {
			return a.Email, a.Password, true
		}
	}
	return "", "", false
}

// AuthHandler bridges the login and registration forms to the session
// service. It owns form state and a single error banner slot per page; the
// session service never renders UI.
type AuthHandler struct {
	session ports.Session
	log     zerolog.Logger
}

func NewAuthHandler(session ports.Session, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{session: session, log: log}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FullName   string `form:"full_name" validate:"required"`
	Username   string `form:"username" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Password   string `form:"password" validate:"required,min=8"`
	Role       string `form:"role" validate:"required,oneof=employee team_lead manager department_head"`
	Department string `form:"department"`
	Team       string `form:"team"`
}

type loginPage struct {
	Error     string
	Pending   bool
	Email     InputField
	Password  InputField
	Demo      []DemoAccount
	CSRFField template.HTML
}

type registerPage struct {
	Error      string
	Pending    bool
	FullName   InputField
	Username   InputField
	Email      InputField
	Password   InputField
	Role       SelectField
	Department SelectField
	Team       SelectField
	CSRFField  template.HTML
}

// ShowLogin renders the login form. A ?demo=<role> query pre-fills the
// fixed demo credentials for that role without any network call.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if _, ok := h.session.Current(); ok {
		return c.Redirect(http.StatusSeeOther, navigation.PathDashboard)
	}

	form := loginForm{}
	if tag := c.QueryParam("demo"); tag != "" {
		if email, password, ok := DemoCredentials(tag); ok {
			form.Email = email
			form.Password = password
		}
	}
	return c.Render(http.StatusOK, "login", h.loginPage(c, form, "", nil))
}

// SubmitLogin validates the credentials, invokes the session service, and
// either redirects to the dashboard or re-renders with the failure reason.
func (h *AuthHandler) SubmitLogin(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "login", h.loginPage(c, form, domain.GenericAuthFailure, nil))
	}

	// Resubmission while a request is in flight is suppressed, not queued.
	if h.session.Pending() {
		return c.Render(http.StatusConflict, "login", h.loginPage(c, form, "", nil))
	}

	if err := c.Validate(&form); err != nil {
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			return c.Render(http.StatusBadRequest, "login", h.loginPage(c, form, "", ve.ByField()))
		}
		return err
	}

	start := time.Now()
	err := h.session.Login(c.Request().Context(), form.Email, form.Password)
	metrics.AuthRequestDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.LoginsTotal.WithLabelValues(resultLabel(err)).Inc()
		h.log.Info().Err(err).Str("email", form.Email).Msg("login failed")
		return c.Render(http.StatusUnauthorized, "login", h.loginPage(c, form, domain.DisplayReason(err), nil))
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, navigation.PathDashboard)
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	if _, ok := h.session.Current(); ok {
		return c.Redirect(http.StatusSeeOther, navigation.PathDashboard)
	}
	form := registerForm{Role: string(domain.RoleEmployee)}
	return c.Render(http.StatusOK, "register", h.registerPage(c, form, "", nil))
}

// SubmitRegister validates the profile fields, invokes the session service,
// and treats the newly created identity as immediately authenticated.
func (h *AuthHandler) SubmitRegister(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, "register", h.registerPage(c, form, domain.GenericAuthFailure, nil))
	}

	if h.session.Pending() {
		return c.Render(http.StatusConflict, "register", h.registerPage(c, form, "", nil))
	}

	if err := c.Validate(&form); err != nil {
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			return c.Render(http.StatusBadRequest, "register", h.registerPage(c, form, "", ve.ByField()))
		}
		return err
	}

	input := domain.Registration{
		FullName:   form.FullName,
		Username:   form.Username,
		Email:      form.Email,
		Password:   form.Password,
		Role:       domain.Role(form.Role),
		Department: form.Department,
		Team:       form.Team,
	}

	start := time.Now()
	err := h.session.Register(c.Request().Context(), input)
	metrics.AuthRequestDuration.WithLabelValues("register").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(resultLabel(err)).Inc()
		h.log.Info().Err(err).Str("email", form.Email).Msg("registration failed")
		return c.Render(http.StatusUnauthorized, "register", h.registerPage(c, form, domain.DisplayReason(err), nil))
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, navigation.PathDashboard)
}

// Logout clears the session and navigates to the login route. There is no
// confirmation step and no error path.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	metrics.LogoutsTotal.Inc()
	return c.Redirect(http.StatusSeeOther, navigation.PathLogin)
}

// resultLabel classifies a failed auth operation for metrics.
func resultLabel(err error) string {
	var te *domain.TransportError
	if errors.As(err, &te) {
		return "error"
	}
	return "rejected"
}

func (h *AuthHandler) loginPage(c echo.Context, form loginForm, banner string, fieldErrs map[string]string) loginPage {
	return loginPage{
		Error:   banner,
		Pending: h.session.Pending(),
		Email: InputField{
			Name: "email", Label: "Email", Type: "email", Icon: "envelope",
			Placeholder: "your@email.com", Required: true,
			Value: form.Email, Error: fieldErrs["email"],
		},
		Password: InputField{
			Name: "password", Label: "Password", Type: "password", Icon: "lock",
			Placeholder: "••••••••", Required: true,
			Value: form.Password, Error: fieldErrs["password"],
		},
		Demo:      demoAccounts,
		CSRFField: csrf.TemplateField(c.Request()),
	}
}

func (h *AuthHandler) registerPage(c echo.Context, form registerForm, banner string, fieldErrs map[string]string) registerPage {
	return registerPage{
		Error:   banner,
		Pending: h.session.Pending(),
		FullName: InputField{
			Name: "full_name", Label: "Full Name", Icon: "user",
			Placeholder: "John Doe", Required: true,
			Value: form.FullName, Error: fieldErrs["full_name"],
		},
		Username: InputField{
			Name: "username", Label: "Username", Icon: "user",
			Placeholder: "johndoe", Required: true,
			Value: form.Username, Error: fieldErrs["username"],
		},
		Email: InputField{
			Name: "email", Label: "Email Address", Type: "email", Icon: "envelope",
			Placeholder: "john.doe@company.com", Required: true,
			Value: form.Email, Error: fieldErrs["email"],
		},
		Password: InputField{
			Name: "password", Label: "Password", Type: "password", Icon: "lock",
			Placeholder: "Create a strong password", Required: true,
			HelperText: "Minimum 8 characters",
			Value:      form.Password, Error: fieldErrs["password"],
		},
		Role: SelectField{
			Name: "role", Label: "Role", Value: form.Role, Required: true,
			Options: roleOptions(), Error: fieldErrs["role"],
		},
		Department: SelectField{
			Name: "department", Label: "Department", Value: form.Department,
			Options: departmentOptions(), Error: fieldErrs["department"],
		},
		Team: SelectField{
			Name: "team", Label: "Team", Value: form.Team,
			Options: teamOptions(), Error: fieldErrs["team"],
		},
		CSRFField: csrf.TemplateField(c.Request()),
	}
}

func roleOptions() []Option {
	labels := map[domain.Role]string{
		domain.RoleEmployee:       "Employee",
		domain.RoleTeamLead:       "Team Lead",
		domain.RoleManager:        "Manager",
		domain.RoleDepartmentHead: "Department Head",
	}
	roles := domain.Registrable()
	out := make([]Option, 0, len(roles))
	for _, r := range roles {
		out = append(out, Option{Value: string(r), Label: labels[r]})
	}
	return out
}

// Department and team are list-backed but optional; the empty value is the
// "not selected" sentinel.
func departmentOptions() []Option {
	return []Option{
		{Value: "", Label: "Select Department"},
		{Value: "Engineering", Label: "Engineering"},
		{Value: "Marketing", Label: "Marketing"},
		{Value: "Sales", Label: "Sales"},
		{Value: "HR", Label: "Human Resources"},
		{Value: "Operations", Label: "Operations"},
		{Value: "Design", Label: "Design"},
		{Value: "Finance", Label: "Finance"},
	}
}

func teamOptions() []Option {
	return []Option{
		{Value: "", Label: "Select Team"},
		{Value: "Alpha", Label: "Alpha"},
		{Value: "Beta", Label: "Beta"},
		{Value: "Gamma", Label: "Gamma"},
		{Value: "Delta", Label: "Delta"},
		{Value: "Omega", Label: "Omega"},
	}
}
