package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wardrobe/internal/api/middleware"
	"wardrobe/internal/api/models"
	"wardrobe/internal/api/response"
	"wardrobe/internal/api/service"
)

// UserController handles the pages and form endpoints around registration,
// login and logout.
type UserController struct {
	userService service.UserService
}

// NewUserController creates a new UserController.
func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// setSessionCookie attaches the session token. HTTP-only and SameSite=Lax;
// not Secure, which is acceptable for non-HTTPS deployments only.
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, 0, "/", "", false, true)
}

// Home redirects to the wardrobe when logged in, to the login page otherwise.
func (uc *UserController) Home(c *gin.Context) {
	if _, ok := middleware.UserFromContext(c); ok {
		c.Redirect(http.StatusFound, "/wardrobe")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage shows the login form, or redirects straight to the wardrobe for
// an already authenticated user.
func (uc *UserController) LoginPage(c *gin.Context) {
	if _, ok := middleware.UserFromContext(c); ok {
		c.Redirect(http.StatusFound, "/wardrobe")
		return
	}
	c.HTML(http.StatusOK, "login.html", nil)
}

// RegisterPage shows the registration form.
func (uc *UserController) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

// Login handles the login form. Bad credentials come back as an inline
// error fragment with HTTP 200, never as an error status.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorFragment(c, "login-error", "Invalid username or password")
		return
	}

	_, token, err := uc.userService.Login(c.Request.Context(), &req)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("login failed", "username", req.Username, "error", err)
		}
		response.ErrorFragment(c, "login-error", "Invalid username or password")
		return
	}

	setSessionCookie(c, token)
	response.SuccessFragment(c, "Login successful! Redirecting...", "/wardrobe")
}

// Register handles the registration form. A duplicate username or invalid
// input yields an inline error fragment; success sets the session cookie
// right away.
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorFragment(c, "register-error", "Please fill in all fields correctly")
		return
	}

	_, token, err := uc.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.ErrorFragment(c, "register-error", "Username already exists")
			return
		}
		slog.Error("registration failed", "username", req.Username, "error", err)
		response.ErrorFragment(c, "register-error", "Registration failed, please try again")
		return
	}

	setSessionCookie(c, token)
	response.SuccessFragment(c, "Registration successful! Redirecting to wardrobe...", "/wardrobe")
}

// Logout clears the session cookie and sends the browser back to the login
// page.
func (uc *UserController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
