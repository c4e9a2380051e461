package roles

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Nisith-Naman/Health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/roles/{role}", func(rr chi.Router) {
		rr.Post("/grant", grantRoleHandler(svc))
		rr.Post("/revoke", revokeRoleHandler(svc))

		// Consulta pública: la membresía de roles no es sensible.
		rr.Get("/{address}", hasRoleHandler(svc))
	})
}

type roleChangeRequest struct {
	Address string `json:"address"`
}

type hasRoleResponse struct {
	Role    Role   `json:"role"`
	Address string `json:"address"`
	HasRole bool   `json:"has_role"`
}

// grantRoleHandler godoc
// @Summary Asignar rol
// @Description Asigna un rol (administrator | recorder) a una address. Solo administradores. Idempotente.
// @Tags roles
// @Accept json
// @Produce json
// @Param role path string true "Rol" Enums(administrator, recorder)
// @Param payload body roleChangeRequest true "Address destino"
// @Success 204 {string} string "asignado"
// @Failure 400 {string} string "rol desconocido / address vacía"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /roles/{role}/grant [post]
func grantRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req roleChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.Grant(r.Context(), Role(chi.URLParam(r, "role")), req.Address, claims.Address)
		if err != nil {
			writeRoleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// revokeRoleHandler godoc
// @Summary Quitar rol
// @Description Quita un rol a una address. Solo administradores. Quitar el último administrator falla con 409.
// @Tags roles
// @Accept json
// @Produce json
// @Param role path string true "Rol" Enums(administrator, recorder)
// @Param payload body roleChangeRequest true "Address destino"
// @Success 204 {string} string "quitado"
// @Failure 400 {string} string "rol desconocido / address vacía"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 409 {string} string "último administrador"
// @Router /roles/{role}/revoke [post]
func revokeRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req roleChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		err := svc.Revoke(r.Context(), Role(chi.URLParam(r, "role")), req.Address, claims.Address)
		if err != nil {
			writeRoleError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func hasRoleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := Role(chi.URLParam(r, "role"))
		address := chi.URLParam(r, "address")

		has, err := svc.Has(r.Context(), role, address)
		if err != nil {
			writeRoleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, hasRoleResponse{
			Role:    role,
			Address: strings.ToLower(strings.TrimSpace(address)),
			HasRole: has,
		})
	}
}

func writeRoleError(w http.ResponseWriter, err error) {
	switch {
	case err == ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err == ErrUnauthorized:
		http.Error(w, "forbidden", http.StatusForbidden)
	case err == ErrInvariant:
		http.Error(w, "cannot remove last administrator", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
