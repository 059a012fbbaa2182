package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"
)

const defaultStreakTargetDays = 7

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workouts_test

type entriesRepo interface {
	ListAll(ctx context.Context) ([]Entry, error)
	Get(ctx context.Context, id int) (*Entry, error)
	Add(ctx context.Context, entry Entry) (*Entry, error)
	BulkUpsert(ctx context.Context, entries []Entry) ([]Entry, error)
	List(ctx context.Context, page, size int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

type updatesNotifier interface {
	NotifyUpdates(ctx context.Context, updates []Entry) error
}

type AddEntryResponse struct {
	ID int `json:"id"`
}

type BulkUpdateResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

type HistoryPageResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

type ChartResponse struct {
	Exercise string `json:"exercise"`
	Unit     string `json:"unit"`
	AlignedSeries
}

type StatsResponse struct {
	Exercise string  `json:"exercise"`
	User     string  `json:"user"`
	Unit     string  `json:"unit"`
	Stats    Stats   `json:"stats"`
	History  []Entry `json:"history"`
}

type StreakResponse struct {
	User       string  `json:"user"`
	LongestRun int     `json:"longestRun"`
	TargetDays int     `json:"targetDays"`
	Streak     float64 `json:"streak"`
}

type Handler struct {
	repo           entriesRepo
	notifier       updatesNotifier
	participants   []string
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(
	repo entriesRepo,
	notifier updatesNotifier,
	participants []string,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		notifier:       notifier,
		participants:   participants,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (h *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	bulkUpdateAllowedPerMin int,
) {
	r.HandleFunc("/workouts", h.HandleListAll).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", h.HandleAdd).Methods("POST", "OPTIONS").Name("add-workout")

	bulkUpdateHandler := http.Handler(http.HandlerFunc(h.HandleBulkUpdate))
	if rateLimiter != nil && bulkUpdateAllowedPerMin > 0 {
		bulkUpdateHandler = middleware.RateLimit(
			rateLimiter, "workouts-update", bulkUpdateAllowedPerMin, h.metricsManager,
		)(bulkUpdateHandler)
	}
	r.Handle("/workouts/update", bulkUpdateHandler).Methods("POST", "OPTIONS").Name("bulk-update-workouts")

	r.HandleFunc("/workouts/latest", h.HandleLatest).Methods("GET", "OPTIONS").Name("latest-workouts")
	r.HandleFunc("/workouts/{id:[0-9]+}", h.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/history/page/{page}/size/{size}", h.HandleHistory).Methods("GET", "OPTIONS").Name("workouts-history")
	r.HandleFunc("/workouts/exercise/{exercise}/chart", h.HandleChart).Methods("GET", "OPTIONS").Name("exercise-chart")
	r.HandleFunc("/workouts/exercise/{exercise}/user/{user}/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("exercise-stats")
	r.HandleFunc("/workouts/user/{user}/streak", h.HandleStreak).Methods("GET", "OPTIONS").Name("user-streak")
}

func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listall")
	defer span.End()

	entries, err := h.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("list all workout entries: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, entries, http.StatusOK)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	entry, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, "workout entry not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout entry %d: %s", id, err)
		http.Error(w, "failed to get workout entry", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, entry, http.StatusOK)
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	var entry Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("add workout entry, unmarshal json: %s", err)
		http.Error(w, "invalid workout entry json", http.StatusBadRequest)
		return
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = h.now().UTC()
	}
	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	added, err := h.repo.Add(ctx, entry)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "workout entry already recorded at that time", http.StatusConflict)
			return
		}
		log.Errorf("add workout entry: %s", err)
		http.Error(w, "failed to add workout entry", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("entry.id", added.ID))

	if h.metricsManager != nil {
		h.metricsManager.CounterEntriesAdded.Inc()
	}

	h.writeJSON(w, AddEntryResponse{ID: added.ID}, http.StatusCreated)
}

// HandleBulkUpdate upserts every entry of a JSON array body. Rows are applied independently,
// and the applied ones are announced even when others failed.
func (h *Handler) HandleBulkUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.bulkupdate")
	defer span.End()

	var rawUpdates json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&rawUpdates); err != nil {
		http.Error(w, "request body must be an array", http.StatusBadRequest)
		return
	}
	var updates []Entry
	if !isJSONArray(rawUpdates) {
		http.Error(w, "request body must be an array", http.StatusBadRequest)
		return
	}
	if err := json.Unmarshal(rawUpdates, &updates); err != nil {
		log.Tracef("bulk update, unmarshal json: %s", err)
		http.Error(w, "invalid workout entries json", http.StatusBadRequest)
		return
	}

	now := h.now().UTC()
	for i := range updates {
		if updates[i].RecordedAt.IsZero() {
			updates[i].RecordedAt = now
		}
	}
	if err := ValidateEntries(updates); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("updates.count", len(updates)))

	if h.metricsManager != nil {
		h.metricsManager.CounterBulkUpdates.Inc()
		h.metricsManager.HistogramBulkUpdateSize.Observe(float64(len(updates)))
	}

	if len(updates) == 0 {
		h.writeJSON(w, BulkUpdateResponse{Message: "nothing to update"}, http.StatusOK)
		return
	}

	applied, upsertErr := h.repo.BulkUpsert(ctx, updates)
	if len(applied) > 0 && h.notifier != nil {
		// a failed notification never fails the update itself
		if err := h.notifier.NotifyUpdates(ctx, applied); err != nil {
			log.Errorf("notify %d workout updates: %s", len(applied), err)
		}
	}
	if upsertErr != nil {
		log.Errorf("bulk update, %d/%d applied: %s", len(applied), len(updates), upsertErr)
		http.Error(w, "failed to update workouts", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, BulkUpdateResponse{
		Message: "workouts updated successfully",
		Updated: len(applied),
	}, http.StatusOK)
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.latest")
	defer span.End()

	entries, err := h.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("latest view, list entries: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	views, err := LatestByExercise(entries, h.participants)
	if err != nil {
		log.Errorf("latest view over stored entries: %s", err)
		http.Error(w, "failed to build latest view", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, views, http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.history")
	defer span.End()

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Tracef("handle workouts history, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Tracef("handle workouts history, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "invalid page (has to be greater than 0)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be greater than 0)", http.StatusBadRequest)
		return
	}

	entries, err := h.repo.List(ctx, page, size)
	if err != nil {
		log.Errorf("list workouts history page: %s", err)
		http.Error(w, "failed to get workouts history", http.StatusInternalServerError)
		return
	}
	total, err := h.repo.Count(ctx)
	if err != nil {
		log.Errorf("count workout entries: %s", err)
		http.Error(w, "failed to get workouts history", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, HistoryPageResponse{Entries: entries, Total: total}, http.StatusOK)
}

// HandleChart returns the exercise trend of every participant on a shared daily axis.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.chart")
	defer span.End()

	exercise := mux.Vars(r)["exercise"]
	span.SetAttributes(attribute.String("exercise", exercise))

	entries, err := h.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("chart, list entries: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	participants := h.participants
	if len(participants) == 0 {
		participants = DistinctUsers(entries)
	}

	user2series := make(map[string][]DayPoint, len(participants))
	for _, user := range participants {
		series, err := DailySeries(PairHistory(entries, exercise, user))
		if err != nil {
			log.Errorf("chart, daily series for %s/%s: %s", exercise, user, err)
			http.Error(w, "failed to build chart", http.StatusInternalServerError)
			return
		}
		user2series[user] = series
	}

	aligned, err := AlignSeries(user2series)
	if err != nil {
		log.Errorf("chart, align series for %s: %s", exercise, err)
		http.Error(w, "failed to build chart", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, ChartResponse{
		Exercise:      exercise,
		Unit:          UnitFor(exercise),
		AlignedSeries: aligned,
	}, http.StatusOK)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.stats")
	defer span.End()

	vars := mux.Vars(r)
	exercise, user := vars["exercise"], vars["user"]
	span.SetAttributes(attribute.String("exercise", exercise), attribute.String("user", user))

	entries, err := h.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("stats, list entries: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	history := PairHistory(entries, exercise, user)
	stats, err := DescriptiveStats(Values(history))
	if err != nil {
		log.Errorf("stats for %s/%s: %s", exercise, user, err)
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, StatsResponse{
		Exercise: exercise,
		User:     user,
		Unit:     UnitFor(exercise),
		Stats:    stats,
		History:  history,
	}, http.StatusOK)
}

func (h *Handler) HandleStreak(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.streak")
	defer span.End()

	user := mux.Vars(r)["user"]

	targetDays := defaultStreakTargetDays
	if targetDaysStr := r.URL.Query().Get("target_days"); targetDaysStr != "" {
		parsed, err := strconv.Atoi(targetDaysStr)
		if err != nil {
			http.Error(w, "parse form error, parameter <target_days>", http.StatusBadRequest)
			return
		}
		targetDays = parsed
	}

	entries, err := h.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("streak, list entries: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	streak, err := LongestStreak(entries, user, targetDays)
	if err != nil {
		if errors.Is(err, ErrInvalidTarget) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("streak for %s: %s", user, err)
		http.Error(w, "failed to compute streak", http.StatusInternalServerError)
		return
	}
	longestRun, err := LongestRun(entries, user)
	if err != nil {
		log.Errorf("longest run for %s: %s", user, err)
		http.Error(w, "failed to compute streak", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, StreakResponse{
		User:       user,
		LongestRun: longestRun,
		TargetDays: targetDays,
		Streak:     streak,
	}, http.StatusOK)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any, statusCode int) {
	respJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal workouts response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}

func isJSONArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
