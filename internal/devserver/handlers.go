package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/qszone/naviguard/internal/session"
)

// msgNoSuchUser is returned for a login attempt with an unknown account name.
const msgNoSuchUser = "没有此用户"

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// tokenData is the data payload for login and token refresh responses.
type tokenData struct {
	Token string `json:"token"`
}

// handleLogin authenticates a fixture account and returns a signed JWT.
// An unknown account is a business failure, not an HTTP error: the envelope
// carries code -1 inside a 200 response.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, codeUnknown, nil, "invalid JSON body")
		return
	}

	if _, ok := fixtures[req.Name]; !ok {
		writeFail(w, msgNoSuchUser)
		return
	}

	signed, err := s.issueToken(req.Name)
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, codeUnknown, nil, "failed to generate token")
		return
	}

	writeOK(w, tokenData{Token: signed})
}

// handleRefreshToken re-issues a token for the bearer of a valid credential.
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	name, ok := s.subjectFromRequest(r)
	if !ok {
		writeEnvelope(w, http.StatusUnauthorized, codeUnknown, nil, "invalid credential")
		return
	}

	signed, err := s.issueToken(name)
	if err != nil {
		s.logger.Error("token issuance failed", "error", err)
		writeEnvelope(w, http.StatusInternalServerError, codeUnknown, nil, "failed to generate token")
		return
	}

	writeOK(w, tokenData{Token: signed})
}

// handleGetUser resolves the bearer credential to its fixture account.
// An absent or unresolvable credential yields the roleless guest principal,
// so the client side of the contract always receives a principal.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if name, ok := s.subjectFromRequest(r); ok {
		if p, known := fixtures[name]; known {
			writeOK(w, p)
			return
		}
	}
	writeOK(w, guest)
}

// handleGetUserByID returns the fixture account with the given numeric ID.
func (s *Server) handleGetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, codeUnknown, nil, "invalid user id")
		return
	}

	for _, p := range fixtures {
		if p.ID == id {
			writeOK(w, p)
			return
		}
	}
	if guest.ID == id {
		writeOK(w, guest)
		return
	}
	writeEnvelope(w, http.StatusNotFound, codeUnknown, nil, msgNoSuchUser)
}

// handleSaveUser accepts a principal write. The development server does not
// persist accounts; it echoes the submitted principal back.
func (s *Server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var p session.Principal
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeEnvelope(w, http.StatusBadRequest, codeUnknown, nil, "invalid JSON body")
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		if n, err := strconv.Atoi(id); err == nil {
			p.ID = n
		}
	}
	writeOK(w, p)
}

// handleListUsers returns every fixture account.
func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	out := make([]session.Principal, 0, len(fixtures)+1)
	for _, name := range []string{"admin", "editor"} {
		out = append(out, fixtures[name])
	}
	out = append(out, guest)
	writeOK(w, out)
}

// issueToken signs an HS256 JWT for the named fixture account.
func (s *Server) issueToken(name string) (string, error) {
	ttl := s.cfg.JWT.TTLMinutes
	if ttl == 0 {
		ttl = 360
	}

	claims := jwt.MapClaims{
		"sub":  name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Duration(ttl) * time.Minute).Unix(),
		"role": fixtures[name].Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.Secret))
}

// subjectFromRequest extracts and verifies the bearer JWT from the
// Authorization header and returns its subject.
func (s *Server) subjectFromRequest(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}
