package dto

import (
	"bank-backoffice/internal/domain/auth"
	"fmt"
	"strings"
	"time"
)

type CaptchaResponse struct {
	Captcha   string `json:"captcha"`
	CaptchaID string `json:"captchaId"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha,omitempty"`
	// CaptchaID is read from the captcha_id cookie when absent.
	CaptchaID string `json:"captchaId,omitempty"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if r.Password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

type SessionResponse struct {
	Message   string    `json:"message"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
	Redirect  string    `json:"redirect"`
}

func NewSessionResponse(s *auth.Session, redirect string) SessionResponse {
	return SessionResponse{
		Message:   fmt.Sprintf("Welcome, %s.", s.Identity.Name),
		Name:      s.Identity.Name,
		Role:      string(s.Identity.Role),
		ExpiresAt: s.ExpiresAt,
		Redirect:  redirect,
	}
}
