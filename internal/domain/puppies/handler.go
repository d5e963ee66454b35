package puppies

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"puppy-store/internal/platform/logger"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/puppies", func(pr chi.Router) {
		pr.Get("/", listPuppiesHandler(svc))
		pr.Get("/{puppyID}", getPuppyHandler(svc))
	})
}

// RegisterDebugRoutes monta el toggle de simulación de error. Sólo para dev.
func RegisterDebugRoutes(r chi.Router, svc *Service) {
	r.Route("/debug/simulate-error", func(dr chi.Router) {
		dr.Get("/", getSimulateErrorHandler(svc))
		dr.Put("/", putSimulateErrorHandler(svc))
	})
}

// puppyResponse es un cachorro tal como lo devuelve el listado.
type puppyResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Age         *float64 `json:"age,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// pageResponse es una página del listado. nextCursor se omite cuando no hay más.
type pageResponse struct {
	Data       []puppyResponse `json:"data"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// puppyDetailResponse agrega los valores derivados del detalle.
type puppyDetailResponse struct {
	puppyResponse
	AgeMonths *int   `json:"ageMonths,omitempty"`
	Meta      string `json:"meta,omitempty"`
}

type simulateErrorRequest struct {
	Enabled *bool `json:"enabled"`
}

type simulateErrorResponse struct {
	Enabled bool `json:"enabled"`
}

// listPuppiesHandler godoc
// @Summary Listar cachorros (paginado keyset)
// @Description Devuelve hasta `limit` cachorros a partir del siguiente a `cursor`. Un cursor desconocido reinicia desde el principio. `nextCursor` se omite cuando el dataset se agotó.
// @Tags puppies
// @Produce json
// @Param cursor query string false "ID del último cachorro recibido"
// @Param limit query int false "Tamaño de página (default 12, máx 100)"
// @Success 200 {object} pageResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 503 {string} string "Failed to load puppies. Please try again."
// @Router /puppies [get]
func listPuppiesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		req := PageRequest{Cursor: q.Get("cursor")}
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "limit must be an integer", http.StatusBadRequest)
				return
			}
			if n > MaxLimit {
				n = MaxLimit
			}
			req.Limit = n
		}

		page, err := svc.FetchPage(r.Context(), req)
		if err != nil {
			logger.FromContext(r.Context()).Warn("fetch page failed", map[string]any{
				"cursor": req.Cursor,
				"limit":  req.Limit,
				"error":  err,
			})
			if errors.Is(err, ErrRetrievalFailed) {
				http.Error(w, RetrievalMessage, http.StatusServiceUnavailable)
				return
			}
			// cliente canceló el request
			http.Error(w, "request cancelled", http.StatusRequestTimeout)
			return
		}

		out := pageResponse{
			Data:       make([]puppyResponse, 0, len(page.Data)),
			NextCursor: page.NextCursor,
		}
		for _, p := range page.Data {
			out.Data = append(out.Data, toPuppyResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPuppyHandler godoc
// @Summary Detalle de cachorro
// @Description Resuelve un cachorro por ID. Incluye `ageMonths` (edad redondeada a meses) y la línea `meta`.
// @Tags puppies
// @Produce json
// @Param puppyID path string true "ID del cachorro"
// @Success 200 {object} puppyDetailResponse
// @Failure 404 {string} string "puppy not found"
// @Router /puppies/{puppyID} [get]
func getPuppyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "puppyID")

		p, found, err := svc.FindByID(r.Context(), id)
		if err != nil {
			logger.FromContext(r.Context()).Error("find puppy failed", map[string]any{"puppy_id": id, "error": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !found {
			http.Error(w, "puppy not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPuppyDetailResponse(p))
	}
}

// getSimulateErrorHandler godoc
// @Summary Estado de la simulación de error
// @Tags debug
// @Produce json
// @Success 200 {object} simulateErrorResponse
// @Router /debug/simulate-error [get]
func getSimulateErrorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, simulateErrorResponse{Enabled: svc.ErrorSwitch().Enabled()})
	}
}

// putSimulateErrorHandler godoc
// @Summary Encender/apagar la simulación de error
// @Tags debug
// @Accept json
// @Produce json
// @Param payload body simulateErrorRequest true "enabled"
// @Success 200 {object} simulateErrorResponse
// @Failure 400 {string} string "invalid json"
// @Failure 409 {string} string "error simulation not configured"
// @Router /debug/simulate-error [put]
func putSimulateErrorHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sw := svc.ErrorSwitch()
		if sw == nil {
			http.Error(w, "error simulation not configured", http.StatusConflict)
			return
		}

		var req simulateErrorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sw.Set(*req.Enabled)
		writeJSON(w, http.StatusOK, simulateErrorResponse{Enabled: sw.Enabled()})
	}
}

func toPuppyResponse(p Puppy) puppyResponse {
	return puppyResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Age:         p.Age,
		Location:    p.Location,
	}
}

func toPuppyDetailResponse(p Puppy) puppyDetailResponse {
	out := puppyDetailResponse{
		puppyResponse: toPuppyResponse(p),
		Meta:          p.Meta(),
	}
	if m, ok := p.AgeMonths(); ok {
		out.AgeMonths = &m
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
