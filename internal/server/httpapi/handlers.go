package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/postkeeper/internal/netx"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
	"github.com/dmitrijs2005/postkeeper/internal/server/services"
	"github.com/dmitrijs2005/postkeeper/internal/server/validate"
)

type credentialsRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type postRequest struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type postIDResponse struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

type postResponse struct {
	Status string       `json:"status"`
	Post   *models.Post `json:"post"`
}

type postListResponse struct {
	Status string         `json:"status"`
	Posts  []*models.Post `json:"posts"`
}

// httpCode maps a service status to the response code it travels with.
func httpCode(st services.Status) int {
	switch st {
	case services.StatusOK:
		return http.StatusOK
	case services.StatusInvalidNickname, services.StatusInvalidPost,
		services.StatusIncorrectID, services.StatusIncorrectLimit:
		return http.StatusBadRequest
	case services.StatusInvalidCredentials, services.StatusTokenExpired,
		services.StatusInvalidToken, services.StatusIPMismatch:
		return http.StatusUnauthorized
	case services.StatusNoAccess:
		return http.StatusForbidden
	case services.StatusUserNotFound, services.StatusPostNotFound:
		return http.StatusNotFound
	case services.StatusUserExists, services.StatusMaxSessions:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeStatus(w http.ResponseWriter, st services.Status) {
	writeJSON(w, httpCode(st), statusResponse{Status: st.String()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "BAD_REQUEST"})
		return false
	}
	return true
}

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return token
}

// authorize runs the token validation pipeline and, on failure, writes the
// response itself and reports ok=false.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (nickname string, ok bool) {
	nickname, st := s.accounts.Validate(r.Context(), bearerToken(r), netx.ClientIP(r))
	if st != services.StatusOK {
		writeStatus(w, st)
		return "", false
	}
	return nickname, true
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, st := s.accounts.SignUp(r.Context(), req.Nickname, req.Password)
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Status: st.String(), Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, st := s.accounts.Login(r.Context(), req.Nickname, req.Password)
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Status: st.String(), Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	st := s.accounts.Logout(r.Context(), bearerToken(r), netx.ClientIP(r))
	writeStatus(w, st)
}

func (s *Server) handleRenew(w http.ResponseWriter, r *http.Request) {
	token, st := s.accounts.Renew(r.Context(), bearerToken(r), netx.ClientIP(r))
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Status: st.String(), Token: token})
}

func (s *Server) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	nickname, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id, st := s.posts.Create(r.Context(), nickname, req.Title, req.Content)
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, postIDResponse{Status: st.String(), ID: id})
}

// handlePostGet serves a single post. Posts are public to fetch, so no token
// is required.
func (s *Server) handlePostGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeStatus(w, services.StatusIncorrectID)
		return
	}

	post, st := s.posts.Get(r.Context(), id)
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, postResponse{Status: st.String(), Post: post})
}

// handlePostList serves the post feed without requiring a token. A missing
// limit parameter means "as many as allowed".
func (s *Server) handlePostList(w http.ResponseWriter, r *http.Request) {
	limit := validate.MaxReceiveLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeStatus(w, services.StatusIncorrectLimit)
			return
		}
	}

	posts, st := s.posts.List(r.Context(), limit)
	if st != services.StatusOK {
		writeStatus(w, st)
		return
	}
	writeJSON(w, http.StatusOK, postListResponse{Status: st.String(), Posts: posts})
}

func (s *Server) handlePostEdit(w http.ResponseWriter, r *http.Request) {
	nickname, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeStatus(w, s.posts.Edit(r.Context(), req.ID, nickname, req.Title, req.Content))
}

func (s *Server) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	nickname, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeStatus(w, s.posts.Delete(r.Context(), req.ID, nickname))
}

func (s *Server) rateHandler(isLike bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nickname, ok := s.authorize(w, r)
		if !ok {
			return
		}

		var req postRequest
		if !decodeBody(w, r, &req) {
			return
		}

		writeStatus(w, s.posts.SetRate(r.Context(), req.ID, nickname, isLike))
	}
}

func (s *Server) handleRemoveRate(w http.ResponseWriter, r *http.Request) {
	nickname, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var req postRequest
	if !decodeBody(w, r, &req) {
		return
	}

	writeStatus(w, s.posts.UnsetRate(r.Context(), req.ID, nickname))
}
