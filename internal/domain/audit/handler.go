package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// AdminChecker evita importar el paquete roles (rompe ciclos).
type AdminChecker interface {
	IsAdministrator(ctx context.Context, address string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, admins AdminChecker) {
	r.Get("/audit", listAuditHandler(svc, admins))
}

type eventResponse struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	Actor     string    `json:"actor"`
	Subject   string    `json:"subject"`
	TokenID   *uint64   `json:"token_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// listAuditHandler godoc
// @Summary Listar eventos de auditoría
// @Description Lista los cambios recientes de roles, accesos y ownership. Solo administradores.
// @Tags audit
// @Produce json
// @Param limit query int false "Máximo de eventos (1-200). Por defecto 50"
// @Success 200 {array} eventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /audit [get]
func listAuditHandler(svc *Service, admins AdminChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		isAdmin, err := admins.IsAdministrator(r.Context(), claims.Address)
		if err != nil || !isAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		items, err := svc.ListRecent(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, eventResponse{
				ID:        e.ID,
				Action:    e.Action,
				Actor:     e.Actor,
				Subject:   e.Subject,
				TokenID:   e.TokenID,
				Detail:    e.Detail,
				CreatedAt: e.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
