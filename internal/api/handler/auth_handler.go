package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarydesk/console/internal/api/middleware"
	"github.com/librarydesk/console/internal/core/domain"
	"github.com/librarydesk/console/internal/core/ports"
	"github.com/librarydesk/console/internal/core/service"
)

// Sessions is the part of the session service the login screens use.
type Sessions interface {
	Login(ctx context.Context, in service.LoginInput) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
	Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
}

type AuthHandler struct {
	sessions Sessions
	secret   string
	secure   bool
	log      zerolog.Logger
}

func NewAuthHandler(sessions Sessions, secret string, secureCookie bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, secret: secret, secure: secureCookie, log: log}
}

// LoginView is the model of both login screens.
type LoginView struct {
	Portal   service.Portal
	Action   string
	Username string
}

type RegisterView struct {
	Username string
	Name     string
	Email    string
	Contact  string
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", "Sign in", LoginView{Portal: service.PortalGeneral, Action: "/login"}, nil)
}

func (h *AuthHandler) ShowAdminLogin(c echo.Context) error {
	return renderPage(c, http.StatusOK, "login", "Administrator sign-in", LoginView{Portal: service.PortalAdmin, Action: "/admin/login"}, nil)
}

// Login signs in any role and lands on that role's dashboard.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, service.PortalGeneral, "/login", "Sign in")
}

// AdminLogin only admits administrators. Other roles see an access-denied
// banner and no session is created.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, service.PortalAdmin, "/admin/login", "Administrator sign-in")
}

func (h *AuthHandler) login(c echo.Context, portal service.Portal, action, title string) error {
	var form loginForm
	view := LoginView{Portal: portal, Action: action}
	if err := c.Bind(&form); err != nil {
		return renderPage(c, http.StatusBadRequest, "login", title, view, failed(domain.ErrInvalidCredentials))
	}
	view.Username = form.Username

	sess, err := h.sessions.Login(c.Request().Context(), service.LoginInput{
		Username: form.Username,
		Password: form.Password,
		Portal:   portal,
	})
	if err != nil {
		return renderPage(c, flashStatus(err), "login", title, view, failed(err))
	}

	token, err := middleware.SignSessionID(h.secret, sess.ID)
	if err != nil {
		return err
	}
	c.SetCookie(middleware.SessionCookieFor(token, h.secure))
	return c.Redirect(http.StatusSeeOther, sess.Role.LandingRoute())
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return renderPage(c, http.StatusOK, "register", "Create a member account", RegisterView{}, nil)
}

// Register creates a member account and shows the sign-in screen.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	bindErr := bindForm(c, &form)
	view := RegisterView{Username: form.Username, Name: form.Name, Email: form.Email, Contact: form.Contact}
	if bindErr != nil {
		return renderPage(c, flashStatus(bindErr), "register", "Create a member account", view, failed(bindErr))
	}

	if _, err := h.sessions.Register(c.Request().Context(), form.input()); err != nil {
		return renderPage(c, flashStatus(err), "register", "Create a member account", view, failed(err))
	}
	login := LoginView{Portal: service.PortalGeneral, Action: "/login", Username: form.Username}
	return renderPage(c, http.StatusCreated, "login", "Sign in", login, service.Success("Account created. You can sign in now."))
}

// Logout ends the session and clears the marker.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.sessions.Logout(c.Request().Context(), sess); err != nil {
			h.log.Error().Err(err).Str("username", sess.Username).Msg("logout")
		}
	}
	c.SetCookie(middleware.ExpiredSessionCookie())
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// Home sends a signed-in user to their dashboard.
func (h *AuthHandler) Home(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, sess.Role.LandingRoute())
}
