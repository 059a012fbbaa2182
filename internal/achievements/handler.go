package achievements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=achievements_test

type achievementsService interface {
	List(ctx context.Context) ([]Achievement, error)
	Get(ctx context.Context, id int) (*Achievement, error)
	Create(ctx context.Context, a Achievement) (*Achievement, error)
	Update(ctx context.Context, a Achievement) (*Achievement, error)
	Delete(ctx context.Context, id int) error
	Claim(ctx context.Context, id int) (*Achievement, error)
}

type DeleteResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service        achievementsService
	metricsManager *metrics.Manager
}

func NewHandler(service achievementsService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/achievements", h.HandleList).Methods("GET", "OPTIONS").Name("list-achievements")
	r.HandleFunc("/achievements", h.HandleCreate).Methods("POST", "OPTIONS").Name("create-achievement")
	r.HandleFunc("/achievements/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-achievement")
	r.HandleFunc("/achievements/{id:[0-9]+}", h.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-achievement")
	r.HandleFunc("/achievements/{id:[0-9]+}", h.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-achievement")
	r.HandleFunc("/achievements/{id:[0-9]+}/claim", h.HandleClaim).Methods("POST", "OPTIONS").Name("claim-achievement")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	achievements, err := h.service.List(ctx)
	if err != nil {
		log.Errorf("list achievements: %s", err)
		http.Error(w, "failed to get achievements", http.StatusInternalServerError)
		return
	}

	writeJSON(w, achievements, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	a, err := h.service.Get(ctx, id)
	if err != nil {
		writeServiceError(w, "get achievement", err)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.create")
	defer span.End()

	var a Achievement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		log.Tracef("create achievement, unmarshal json: %s", err)
		http.Error(w, "invalid achievement json", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(ctx, a)
	if err != nil {
		writeServiceError(w, "create achievement", err)
		return
	}
	span.SetAttributes(attribute.Int("achievement.id", created.ID))

	writeJSON(w, created, http.StatusCreated)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.update")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	var a Achievement
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		log.Tracef("update achievement, unmarshal json: %s", err)
		http.Error(w, "invalid achievement json", http.StatusBadRequest)
		return
	}
	// path id wins over the body
	a.ID = id

	updated, err := h.service.Update(ctx, a)
	if err != nil {
		writeServiceError(w, "update achievement", err)
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.delete")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		writeServiceError(w, "delete achievement", err)
		return
	}

	writeJSON(w, DeleteResponse{Message: "achievement deleted"}, http.StatusOK)
}

func (h *Handler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.claim")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	claimed, err := h.service.Claim(ctx, id)
	if err != nil {
		writeServiceError(w, "claim achievement", err)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterAchievementsClaimed.Inc()
	}
	log.Infof("achievement %d [%s] claimed by %s", claimed.ID, claimed.Title, claimed.TargetUser)

	writeJSON(w, claimed, http.StatusOK)
}

func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidAchievement):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrAchievementNotFound):
		http.Error(w, "achievement not found", http.StatusNotFound)
	case errors.Is(err, ErrClaimNotAllowed):
		http.Error(w, "achievement cannot be claimed", http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal achievements response: %s", err)
		http.Error(w, "marshal response error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, b, status)
}
