package tokens

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

// GrantCounter evita importar el paquete access (rompe ciclos).
// Se usa para mostrarle al owner cuántos grants quedan vivos
// después de un transfer (no los revocamos; ver auditoría).
type GrantCounter interface {
	LiveGrants(ctx context.Context, tokenID uint64) (int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, grants GrantCounter) {
	r.Route("/tokens", func(tr chi.Router) {
		tr.Post("/", mintTokenHandler(svc))
		tr.Get("/{tokenID}", getTokenHandler(svc))
		tr.Post("/{tokenID}/transfer", transferTokenHandler(svc, grants))
	})

	// Tokens del caller (índice owner -> tokens, no scan)
	r.Get("/me/tokens", listMyTokensHandler(svc))
}

type mintTokenRequest struct {
	Owner string `json:"owner"`
}

type transferTokenRequest struct {
	NewOwner string `json:"new_owner"`
}

type tokenResponse struct {
	ID       uint64    `json:"id"`
	Owner    string    `json:"owner"`
	MintedBy string    `json:"minted_by"`
	MintedAt time.Time `json:"minted_at"`
}

type transferResponse struct {
	Token tokenResponse `json:"token"`
	// Grants que siguen vivos tras el transfer. El nuevo owner
	// decide si los revoca.
	LiveGrants int `json:"live_grants"`
}

// mintTokenHandler godoc
// @Summary Mintear record-token
// @Description Crea un token nuevo para el owner indicado. Solo administradores. El ID es monotónico desde 1.
// @Tags tokens
// @Accept json
// @Produce json
// @Param payload body mintTokenRequest true "Owner inicial"
// @Success 201 {object} tokenResponse
// @Failure 400 {string} string "owner vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /tokens [post]
func mintTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req mintTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Mint(r.Context(), req.Owner, claims.Address)
		if err != nil {
			writeTokenError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toTokenResponse(t))
	}
}

func getTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseTokenID(w, r)
		if !ok {
			return
		}

		// Superficie de consulta pública: el owner de un token
		// es visible sin autenticación.
		t, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeTokenError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTokenResponse(t))
	}
}

func transferTokenHandler(svc *Service, grants GrantCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := parseTokenID(w, r)
		if !ok {
			return
		}

		var req transferTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Transfer(r.Context(), id, req.NewOwner, claims.Address)
		if err != nil {
			writeTokenError(w, err)
			return
		}

		live := 0
		if grants != nil {
			if n, err := grants.LiveGrants(r.Context(), id); err == nil {
				live = n
			}
		}

		writeJSON(w, http.StatusOK, transferResponse{
			Token:      toTokenResponse(t),
			LiveGrants: live,
		})
	}
}

func listMyTokensHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.Address)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]tokenResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTokenResponse(t))
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

func writeTokenError(w http.ResponseWriter, err error) {
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

func toTokenResponse(t Token) tokenResponse {
	return tokenResponse{
		ID:       t.ID,
		Owner:    t.Owner,
		MintedBy: t.MintedBy,
		MintedAt: t.MintedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
