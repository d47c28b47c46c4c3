package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/AlexTLDR/wedding/internal/dashboard"
	"github.com/AlexTLDR/wedding/templates"
)

const (
	googleUserInfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
	msgIncorrectPassword = "Incorrect password. Please try again."
)

func (s *Server) getGoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.config.GoogleClientID,
		ClientSecret: s.config.GoogleClientSecret,
		RedirectURL:  s.config.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	data := templates.AdminLoginData{
		Error:           msg,
		PasswordEnabled: s.gate.Enabled(),
		GoogleEnabled:   s.config.GoogleLoginEnabled(),
	}
	if err := templates.AdminLogin(data).Render(r.Context(), w); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to render login")
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, r, http.StatusOK, "")
}

func (s *Server) handlePasswordLogin(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	if !s.gate.Enabled() {
		http.NotFound(w, r)
		return
	}

	if err := s.gate.Check(r.PostFormValue("password")); err != nil {
		if errors.Is(err, dashboard.ErrUnauthorized) {
			log.Warn().Msg("dashboard login rejected")
			s.renderLogin(w, r, http.StatusUnauthorized, msgIncorrectPassword)
			return
		}
		log.Error().Err(err).Msg("password check failed")
		s.renderLogin(w, r, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["admin"] = true
	session.Values["name"] = "Admin"
	if err := session.Save(r, w); err != nil {
		log.Error().Err(err).Msg("failed to save session")
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.config.GoogleLoginEnabled() {
		http.NotFound(w, r)
		return
	}

	state := uuid.NewString()
	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values["oauth_state"] = state
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	url := s.getGoogleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)
	session, _ := s.sessionStore.Get(r, sessionName)

	want, _ := session.Values["oauth_state"].(string)
	delete(session.Values, "oauth_state")
	if want == "" || r.URL.Query().Get("state") != want {
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	oauthConfig := s.getGoogleOAuthConfig()
	token, err := oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("token exchange failed")
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	resp, err := oauthConfig.Client(r.Context(), token).Get(googleUserInfoURL)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var userInfo struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	// Check if email is in whitelist
	if !s.isAdminEmail(userInfo.Email) {
		log.Warn().Str("email", userInfo.Email).Msg("google login not whitelisted")
		http.Error(w, "Unauthorized: Your email is not whitelisted", http.StatusUnauthorized)
		return
	}

	session.Values["email"] = userInfo.Email
	session.Values["name"] = userInfo.Name
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.sessionStore.Get(r, sessionName)
	session.Values = map[any]any{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to clear session")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
