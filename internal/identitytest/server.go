// Package identitytest is an in-process stand-in for the identity backend,
// used by integration tests. It mirrors the backend's JSON envelope and
// status conventions but none of its policies: OTP expiry, rate limits and
// token validation stay out of scope.
package identitytest

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/aadeshbhujbal/healthcare-auth/domain"
)

const sessionCookie = "hc_session"

// Account is a seeded identity fixture
type Account struct {
	Password string
	User     domain.User
}

// Server fakes the identity backend over gin
type Server struct {
	engine *gin.Engine

	mu         sync.Mutex
	accounts   map[string]*Account // by email
	sessions   map[string]string   // session id → email
	otps       map[string]string   // identifier → code
	magicLinks map[string]string   // token → email
	nextID     int
}

// New creates a fake backend seeded with one doctor account
// (doctor@clinic.example / Abcdef1!).
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		accounts:   make(map[string]*Account),
		sessions:   make(map[string]string),
		otps:       make(map[string]string),
		magicLinks: make(map[string]string),
	}
	s.Seed(Account{
		Password: "Abcdef1!",
		User: domain.User{
			ID:        "user_doctor",
			Email:     "doctor@clinic.example",
			FirstName: "Jo",
			LastName:  "Shah",
			Role:      domain.RoleDoctor,
		},
	})

	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)
	auth.POST("/register/clinic", s.registerWithClinic)
	auth.POST("/logout", s.logout)
	auth.GET("/session", s.session)
	auth.POST("/sessions/terminate", s.terminateAll)
	auth.POST("/otp/request", s.requestOTP)
	auth.POST("/otp/verify", s.verifyOTP)
	auth.GET("/otp/status", s.otpStatus)
	auth.POST("/otp/invalidate", s.invalidateOTP)
	auth.POST("/magic-link/request", s.requestMagicLink)
	auth.POST("/magic-link/verify", s.verifyMagicLink)
	auth.POST("/social/:provider", s.socialLogin)
	auth.POST("/password/forgot", s.forgotPassword)
	auth.POST("/password/reset", s.resetPassword)
	auth.POST("/password/change", s.changePassword)
	auth.POST("/email/verify", s.verifyEmail)

	s.engine = r
	return s
}

// Handler exposes the fake backend as an http.Handler for httptest
func (s *Server) Handler() http.Handler { return s.engine }

// Seed registers an account fixture
func (s *Server) Seed(account Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := account
	s.accounts[account.User.Email] = &copied
}

// ActiveSessions reports how many sessions are live
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func data(c *gin.Context, status int, payload gin.H) {
	c.JSON(status, gin.H{"data": payload})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (s *Server) startSession(c *gin.Context, email string) {
	s.mu.Lock()
	s.nextID++
	sid := fmt.Sprintf("sess_%s_%d", email, s.nextID)
	s.sessions[sid] = email
	s.mu.Unlock()
	c.SetCookie(sessionCookie, sid, 3600, "/", "", false, true)
}

func (s *Server) currentAccount(c *gin.Context) (*Account, string) {
	sid, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil, ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.sessions[sid]
	if !ok {
		return nil, ""
	}
	return s.accounts[email], sid
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	account, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || account.Password != req.Password {
		fail(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.startSession(c, req.Email)
	data(c, http.StatusOK, gin.H{
		"user":  account.User,
		"token": "token_" + account.User.ID,
	})
}

func (s *Server) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		fail(c, http.StatusConflict, "User already exists")
		return
	}
	s.nextID++
	s.accounts[req.Email] = &Account{
		Password: req.Password,
		User: domain.User{
			ID:        fmt.Sprintf("user_%d", s.nextID),
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      req.Role,
		},
	}
	data(c, http.StatusCreated, gin.H{
		"message": "User registered successfully. Please check your email to verify your account.",
	})
}

func (s *Server) registerWithClinic(c *gin.Context) {
	var req domain.ClinicRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.ClinicID == "" {
		fail(c, http.StatusBadRequest, "clinicId is required")
		return
	}
	data(c, http.StatusCreated, gin.H{
		"message":     "Registered with clinic " + req.ClinicID + ".",
		"redirectUrl": "/clinics/" + req.ClinicID + "/welcome",
	})
}

func (s *Server) logout(c *gin.Context) {
	account, sid := s.currentAccount(c)
	if account == nil {
		fail(c, http.StatusUnauthorized, "No active session")
		return
	}
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) session(c *gin.Context) {
	account, _ := s.currentAccount(c)
	if account == nil {
		fail(c, http.StatusUnauthorized, "No active session")
		return
	}
	data(c, http.StatusOK, gin.H{
		"user":  account.User,
		"token": "token_" + account.User.ID,
	})
}

func (s *Server) terminateAll(c *gin.Context) {
	account, _ := s.currentAccount(c)
	if account == nil {
		fail(c, http.StatusUnauthorized, "No active session")
		return
	}
	s.mu.Lock()
	for sid, email := range s.sessions {
		if email == account.User.Email {
			delete(s.sessions, sid)
		}
	}
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "All sessions terminated"})
}

func (s *Server) requestOTP(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.otps[req.Identifier] = "123456"
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "OTP sent to " + req.Identifier})
}

func (s *Server) verifyOTP(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier" binding:"required"`
		Code       string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	code, ok := s.otps[req.Identifier]
	account := s.accounts[req.Identifier]
	if ok && code == req.Code {
		delete(s.otps, req.Identifier)
	}
	s.mu.Unlock()

	if !ok || code != req.Code {
		fail(c, http.StatusBadRequest, "invalid otp code")
		return
	}
	if account == nil {
		fail(c, http.StatusNotFound, "user not found")
		return
	}

	s.startSession(c, account.User.Email)
	data(c, http.StatusOK, gin.H{
		"user":  account.User,
		"token": "token_" + account.User.ID,
	})
}

func (s *Server) otpStatus(c *gin.Context) {
	email := c.Query("email")
	s.mu.Lock()
	_, active := s.otps[email]
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"active": active})
}

func (s *Server) invalidateOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	delete(s.otps, req.Email)
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "OTP invalidated"})
}

func (s *Server) requestMagicLink(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	s.magicLinks["magic_"+req.Email] = req.Email
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "Magic link sent to " + req.Email})
}

func (s *Server) verifyMagicLink(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	email, ok := s.magicLinks[req.Token]
	if ok {
		delete(s.magicLinks, req.Token)
	}
	account := s.accounts[email]
	s.mu.Unlock()

	if !ok || account == nil {
		fail(c, http.StatusBadRequest, "invalid or expired link")
		return
	}

	s.startSession(c, account.User.Email)
	data(c, http.StatusOK, gin.H{
		"user":  account.User,
		"token": "token_" + account.User.ID,
	})
}

func (s *Server) socialLogin(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "apple" {
		fail(c, http.StatusNotImplemented, "Apple sign-in is not available yet")
		return
	}

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Token != "valid-provider-token" {
		fail(c, http.StatusUnauthorized, "provider token rejected")
		return
	}

	s.mu.Lock()
	account := s.accounts["doctor@clinic.example"]
	s.mu.Unlock()

	s.startSession(c, account.User.Email)
	data(c, http.StatusOK, gin.H{
		"user":  account.User,
		"token": "token_" + account.User.ID,
	})
}

func (s *Server) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	data(c, http.StatusOK, gin.H{
		"message": "If an account exists for " + req.Email + ", reset instructions have been sent.",
	})
}

func (s *Server) resetPassword(c *gin.Context) {
	var req struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	data(c, http.StatusOK, gin.H{"message": "Password has been reset"})
}

func (s *Server) changePassword(c *gin.Context) {
	account, _ := s.currentAccount(c)
	if account == nil {
		fail(c, http.StatusUnauthorized, "No active session")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if account.Password != req.CurrentPassword {
		fail(c, http.StatusBadRequest, "current password is incorrect")
		return
	}

	s.mu.Lock()
	account.Password = req.NewPassword
	s.mu.Unlock()
	data(c, http.StatusOK, gin.H{"message": "Password changed"})
}

func (s *Server) verifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Token == "" || req.Token == "expired" {
		fail(c, http.StatusBadRequest, "invalid verification token")
		return
	}
	data(c, http.StatusOK, gin.H{"message": "Email verified"})
}
