package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vedran77/quill/internal/metrics"
	"github.com/vedran77/quill/internal/service"
	"github.com/vedran77/quill/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	admin       *service.AdminAuthenticator
	log         *slog.Logger
	metrics     *metrics.Metrics
}

func NewAuthHandler(authService *service.AuthService, admin *service.AdminAuthenticator, log *slog.Logger, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, admin: admin, log: log, metrics: m}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateSignup(input.Username, input.Password); errs.HasErrors() {
		h.metrics.AuthEvent("signup", "invalid")
		writeError(w, http.StatusBadRequest, errs.Error())
		return
	}

	if _, err := h.authService.Signup(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			h.metrics.AuthEvent("signup", "conflict")
			writeError(w, http.StatusBadRequest, "Username already exists")
		default:
			h.metrics.AuthEvent("signup", "error")
			h.log.Error("signup failed", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.metrics.AuthEvent("signup", "ok")
	writeMessage(w, http.StatusCreated, "User registered successfully")
}

func (h *AuthHandler) Web3Signup(w http.ResponseWriter, r *http.Request) {
	var input service.Web3SignupInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateWeb3Signup(input.Message, input.EthAddress); errs.HasErrors() {
		h.metrics.AuthEvent("signup_web3", "invalid")
		writeError(w, http.StatusBadRequest, errs.Error())
		return
	}

	if _, err := h.authService.Web3Signup(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, service.ErrAddressTaken):
			h.metrics.AuthEvent("signup_web3", "conflict")
			writeError(w, http.StatusBadRequest, "Ethereum address already in use")
		case errors.Is(err, service.ErrInvalidSignature):
			h.metrics.AuthEvent("signup_web3", "bad_signature")
			writeError(w, http.StatusBadRequest, "Invalid signature")
		default:
			h.metrics.AuthEvent("signup_web3", "error")
			h.log.Error("web3 signup failed", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.metrics.AuthEvent("signup_web3", "ok")
	writeMessage(w, http.StatusCreated, "User registered successfully with Ethereum address")
}

// Login authenticates a stored user. The administrator's username is handed
// to the admin authenticator instead.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if h.admin != nil && h.admin.Matches(input.Username) {
		h.adminLogin(w, input)
		return
	}

	// Blank credentials can never match; answer like any other failed login.
	if errs := validator.ValidateLogin(input.Username, input.Password); errs.HasErrors() {
		h.metrics.AuthEvent("login", "denied")
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.AuthEvent("login", "denied")
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
		} else {
			h.metrics.AuthEvent("login", "error")
			h.log.Error("login failed", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.metrics.AuthEvent("login", "ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.adminLogin(w, input)
}

func (h *AuthHandler) adminLogin(w http.ResponseWriter, input service.LoginInput) {
	if h.admin == nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	resp, err := h.admin.Login(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.metrics.AuthEvent("admin_login", "denied")
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
		} else {
			h.metrics.AuthEvent("admin_login", "error")
			h.log.Error("admin login failed", "err", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.metrics.AuthEvent("admin_login", "ok")
	h.log.Info("admin logged in", "username", h.admin.Username())
	writeJSON(w, http.StatusOK, resp)
}
