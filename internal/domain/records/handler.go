package records

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/domain/roles"
	"github.com/Nisith-Naman/Health/internal/middleware"
	"github.com/Nisith-Naman/Health/internal/ports/content"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes limita los uploads al content store.
const maxUploadBytes = 10 << 20 // 10MB

func RegisterRoutes(r chi.Router, svc *Service, store content.Store) {
	r.Route("/tokens/{tokenID}/records", func(rr chi.Router) {
		rr.Post("/", appendRecordHandler(svc))
		rr.Get("/", historyHandler(svc))
	})

	// Upload al content store (recorder). El contenido NO se cifra acá;
	// el store es public-read, el cifrado es responsabilidad del cliente.
	r.Post("/uploads", uploadHandler(svc, store))
}

type appendRecordRequest struct {
	CID  string `json:"cid"`
	Note string `json:"note"`
}

type entryResponse struct {
	TokenID    uint64    `json:"token_id"`
	Seq        int       `json:"seq"`
	CID        string    `json:"cid"`
	Note       string    `json:"note"`
	AddedBy    string    `json:"added_by"`
	RecordedAt time.Time `json:"recorded_at"`
}

type uploadResponse struct {
	CID string `json:"cid"`
}

// appendRecordHandler godoc
// @Summary Agregar entrada a la historia
// @Description Agrega una entrada (CID + nota) a la secuencia append-only del token. Requiere rol recorder. Autenticación: `X-Debug-Address` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags records
// @Accept json
// @Produce json
// @Param tokenID path int true "ID del token"
// @Param payload body appendRecordRequest true "CID del content store y nota libre"
// @Success 201 {object} entryResponse
// @Failure 400 {string} string "cid vacío"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "token not found"
// @Router /tokens/{tokenID}/records [post]
func appendRecordHandler(svc *Service) http.HandlerFunc {
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

		var req appendRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Append(r.Context(), tokenID, req.CID, req.Note, claims.Address)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	}
}

// historyHandler godoc
// @Summary Ver historia del token
// @Description Devuelve las entradas en orden de append (seq ascendente). Autorizado para el owner actual o un viewer con grant vivo. Historia vacía devuelve lista vacía, no error.
// @Tags records
// @Produce json
// @Param tokenID path int true "ID del token"
// @Success 200 {array} entryResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "token not found"
// @Router /tokens/{tokenID}/records [get]
func historyHandler(svc *Service) http.HandlerFunc {
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

		items, err := svc.History(r.Context(), tokenID, claims.Address)
		if err != nil {
			writeRecordError(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func uploadHandler(svc *Service, store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.Address) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if store == nil {
			http.Error(w, "content store not configured", http.StatusServiceUnavailable)
			return
		}

		// Mismo gate que el append: el upload es el paso previo.
		isRecorder, err := svc.roles.Has(r.Context(), roles.RoleRecorder, claims.Address)
		if err != nil || !isRecorder {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
		if err != nil || len(data) == 0 {
			http.Error(w, "empty body", http.StatusBadRequest)
			return
		}
		if len(data) > maxUploadBytes {
			http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
			return
		}

		mimeType := r.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		cid, err := store.Store(r.Context(), data, mimeType)
		if err != nil {
			http.Error(w, "content store error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{CID: cid})
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

func writeRecordError(w http.ResponseWriter, err error) {
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

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		TokenID:    e.TokenID,
		Seq:        e.Seq,
		CID:        e.CID,
		Note:       e.Note,
		AddedBy:    e.AddedBy,
		RecordedAt: e.RecordedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
