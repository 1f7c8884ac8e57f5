package health

import (
	"net/http"
	"time"

	bookingRepo "lodge/internal/domains/booking/repository"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared/timezone"
	"lodge/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	registry roomRepo.Registry
	ledger   bookingRepo.Ledger
	clock    timezone.Clock
}

type Response struct {
	Status              string     `json:"status"`
	Now                 time.Time  `json:"now"`
	RoomsRefreshedAt    *time.Time `json:"rooms_refreshed_at"`
	BookingsRefreshedAt *time.Time `json:"bookings_refreshed_at"`
}

func New(registry roomRepo.Registry, ledger bookingRepo.Ledger, clock timezone.Clock) Handler {
	return Handler{
		registry: registry,
		ledger:   ledger,
		clock:    clock,
	}
}

func (h *Handler) Router(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.Ready)
}

// Health reports liveness and when the caches were last filled. It never calls upstream.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Router /v1/health [get]
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, Response{
		Status:              "ok",
		Now:                 h.clock.Now(),
		RoomsRefreshedAt:    stamp(h.registry.LastRefreshed()),
		BookingsRefreshedAt: stamp(h.ledger.LastRefreshed()),
	})
}

// Ready reports 503 until both the room registry and the booking ledger have been filled once.
// @Summary Readiness check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[Response]
// @Failure 503 {object} response.Error
// @Router /v1/health/ready [get]
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	rooms, bookings := h.registry.LastRefreshed(), h.ledger.LastRefreshed()
	if rooms.IsZero() || bookings.IsZero() {
		response.WithUnhealthy(w)

		return
	}

	response.WithJSON(w, http.StatusOK, Response{
		Status:              "ready",
		Now:                 h.clock.Now(),
		RoomsRefreshedAt:    &rooms,
		BookingsRefreshedAt: &bookings,
	})
}

func stamp(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
