package access

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tokens/{tokenID}/access", func(ar chi.Router) {
		ar.Post("/", grantAccessHandler(svc))
		ar.Post("/revoke", revokeAccessHandler(svc))
		ar.Get("/", listGrantsHandler(svc))
	})
}

type grantAccessRequest struct {
	Viewer string `json:"viewer"`
	// RFC3339. Vacío u omitido = acceso indefinido.
	ExpiresAt string `json:"expires_at"`
}

type revokeAccessRequest struct {
	Viewer string `json:"viewer"`
}

type grantResponse struct {
	ID        string     `json:"id"`
	TokenID   uint64     `json:"token_id"`
	Viewer    string     `json:"viewer"`
	GrantedBy string     `json:"granted_by"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// grantAccessHandler godoc
// @Summary Otorgar acceso de lectura
// @Description Autoriza a viewer a leer la historia del token, indefinido o hasta expires_at (RFC3339 futuro). Solo el owner actual. Un nuevo grant pisa el expiry anterior. Autenticación: `X-Debug-Address` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags access
// @Accept json
// @Produce json
// @Param tokenID path int true "ID del token"
// @Param payload body grantAccessRequest true "Viewer y expiry opcional"
// @Success 201 {object} grantResponse
// @Failure 400 {string} string "viewer vacío / expiry pasado / expiry inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "token not found"
// @Router /tokens/{tokenID}/access [post]
func grantAccessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tokenID, ok := parseTokenID(w, r)
		if !ok {
			return
		}

		var req grantAccessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var expiresAt *time.Time
		if strings.TrimSpace(req.ExpiresAt) != "" {
			t, err := time.Parse(time.RFC3339, req.ExpiresAt)
			if err != nil {
				http.Error(w, "expires_at must be RFC3339", http.StatusBadRequest)
				return
			}
			expiresAt = &t
		}

		g, err := svc.Grant(r.Context(), tokenID, req.Viewer, expiresAt, claims.Address)
		if err != nil {
			writeAccessError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

// revokeAccessHandler godoc
// @Summary Revocar acceso de lectura
// @Description Elimina el grant de viewer sobre el token. Solo el owner actual. Idempotente: revocar un grant inexistente devuelve 204 igual. El efecto es inmediato en la próxima lectura.
// @Tags access
// @Accept json
// @Produce json
// @Param tokenID path int true "ID del token"
// @Param payload body revokeAccessRequest true "Viewer a revocar"
// @Success 204 {string} string "revocado"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "token not found"
// @Router /tokens/{tokenID}/access/revoke [post]
func revokeAccessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tokenID, ok := parseTokenID(w, r)
		if !ok {
			return
		}

		var req revokeAccessRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.Revoke(r.Context(), tokenID, req.Viewer, claims.Address); err != nil {
			writeAccessError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func listGrantsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		tokenID, ok := parseTokenID(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByToken(r.Context(), tokenID, claims.Address)
		if err != nil {
			writeAccessError(w, err)
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseTokenID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := chi.URLParam(r, "tokenID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "token not found", http.StatusNotFound)
		return 0, false
	}
	return id, true
}

func writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case err == ErrNotFound:
		http.Error(w, "token not found", http.StatusNotFound)
	case err == ErrUnauthorized:
		http.Error(w, "forbidden", http.StatusForbidden)
	case err == ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:        g.ID,
		TokenID:   g.TokenID,
		Viewer:    g.Viewer,
		GrantedBy: g.GrantedBy,
		ExpiresAt: g.ExpiresAt,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
