package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/constants"
	dto "task-market.com/task-market/internal/data_models"
	middleware "task-market.com/task-market/internal/http/middlewares"
	"task-market.com/task-market/internal/locks"
	"task-market.com/task-market/internal/metrics"
	model "task-market.com/task-market/internal/models"
	"task-market.com/task-market/internal/notifications"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
)

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]notifications.Notification
}

func (n *recordingNotifier) Dispatch(batch []notifications.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, batch)
	return true
}

type api struct {
	e        *echo.Echo
	notifier *recordingNotifier
}

func newAPI(t *testing.T) *api {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log, _ := logtest.NewNullLogger()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store := repository.NewStore(db)
	locker := locks.NewLocalTaskLocker()
	notifier := &recordingNotifier{}

	h := NewHandler(
		services.NewTaskService(store, locker, log, m),
		services.NewOfferService(store, locker, services.DefaultOfferPolicy(), log, m),
		services.NewAcceptanceService(store, locker, log, m),
		services.NewSkillService(store, log),
		notifier,
		log,
	)

	e := echo.New()
	Register(e, h, RouteOptions{
		AllowHeaderIdentity: true,
		Metrics:             m,
		Gatherer:            reg,
		Logger:              log,
	})

	return &api{e: e, notifier: notifier}
}

func (a *api) do(method, path, actor, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != "" {
		req.Header.Set(middleware.UserIDHeader, actor)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const taskBody = `{
	"name": "Math tutoring",
	"description": "Two sessions a week of algebra tutoring",
	"category": "Tutoring",
	"hourly_rate": 40,
	"currency": "USD",
	"expected_working_hours": 8
}`

func (a *api) createTask(t *testing.T, owner string) model.Task {
	t.Helper()
	rec := a.do(http.MethodPost, "/tasks", owner, taskBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Task](t, rec)
}

func (a *api) submitOffer(t *testing.T, taskID, provider string) model.Offer {
	t.Helper()
	rec := a.do(http.MethodPost, "/tasks/"+taskID+"/offers", provider,
		`{"hourly_rate": "38.50", "message": "Experienced algebra tutor, available evenings"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Offer](t, rec)
}

func TestHandler_FullLifecycle(t *testing.T) {
	a := newAPI(t)

	task := a.createTask(t, "owner")
	assert.Equal(t, constants.TaskOpen, task.Status)

	o1 := a.submitOffer(t, task.ID, "P1")
	o2 := a.submitOffer(t, task.ID, "P2")
	assert.Equal(t, "38.5", o1.HourlyRate.String())

	rec := a.do(http.MethodPost, "/tasks/"+task.ID+"/offers", "P1",
		`{"hourly_rate": 30, "message": "Trying again with a lower rate"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_offer", decode[dto.ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/offers/"+o1.ID+"/accept", "owner", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[services.AcceptanceResult](t, rec)
	assert.Equal(t, constants.TaskInProgress, result.Task.Status)
	require.Len(t, result.Offers, 2)
	assert.Equal(t, o1.ID, result.Offers[0].ID)
	assert.Equal(t, constants.OfferAccepted, result.Offers[0].Status)
	assert.Equal(t, o2.ID, result.Offers[1].ID)
	assert.Equal(t, constants.OfferRejected, result.Offers[1].Status)

	require.Len(t, a.notifier.batches, 1)
	batch := a.notifier.batches[0]
	require.Len(t, batch, 2)
	assert.Equal(t, notifications.EventOfferAccepted, batch[0].Event)
	assert.Equal(t, notifications.EventOfferRejected, batch[1].Event)

	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/offers/"+o2.ID+"/accept", "owner", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	errBody := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "task_not_open", errBody.Code)
	assert.Equal(t, "invalid_state", errBody.Kind)

	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/complete", "P1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/complete", "owner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constants.TaskCompleted, decode[model.Task](t, rec).Status)

	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/complete", "owner", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "task_not_in_progress", decode[dto.ErrorResponse](t, rec).Code)
}

func TestHandler_RequiresActorForMutations(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/tasks", "", taskBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "actor_required", decode[dto.ErrorResponse](t, rec).Code)

	task := a.createTask(t, "owner")
	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/offers", "",
		`{"hourly_rate": 30, "message": "Anonymous offers are not allowed"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_ValidationAndNotFound(t *testing.T) {
	a := newAPI(t)

	rec := a.do(http.MethodPost, "/tasks", "owner", `{"name": "x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode[dto.ErrorResponse](t, rec).Kind)

	rec = a.do(http.MethodPost, "/tasks", "owner", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	task := a.createTask(t, "owner")
	rec = a.do(http.MethodPost, "/tasks/"+task.ID+"/offers", "P1", `{"hourly_rate": 30, "message": "short"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid_offer_terms", decode[dto.ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodGet, "/tasks/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task_not_found", decode[dto.ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodGet, "/tasks?status=archived", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_RejectNotifiesSingleOffer(t *testing.T) {
	a := newAPI(t)

	task := a.createTask(t, "owner")
	o1 := a.submitOffer(t, task.ID, "P1")
	a.submitOffer(t, task.ID, "P2")

	rec := a.do(http.MethodPost, "/tasks/"+task.ID+"/offers/"+o1.ID+"/reject", "owner", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, constants.OfferRejected, decode[model.Offer](t, rec).Status)

	require.Len(t, a.notifier.batches, 1)
	require.Len(t, a.notifier.batches[0], 1)
	assert.Equal(t, o1.ID, a.notifier.batches[0][0].OfferID)

	rec = a.do(http.MethodGet, "/tasks/"+task.ID+"/offers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[struct {
		Count  int           `json:"count"`
		Offers []model.Offer `json:"offers"`
	}](t, rec)
	assert.Equal(t, 2, listed.Count)
	assert.Equal(t, o1.ID, listed.Offers[0].ID)
}

func TestHandler_BadOfferTermsAreInvalidOfferTerms(t *testing.T) {
	a := newAPI(t)
	task := a.createTask(t, "owner")

	bodies := []string{
		`{"hourly_rate": 0, "message": "Experienced algebra tutor"}`,
		`{"hourly_rate": -5, "message": "Experienced algebra tutor"}`,
		`{"hourly_rate": 30, "message": ""}`,
		`{"message": "Experienced algebra tutor"}`,
	}
	for _, body := range bodies {
		rec := a.do(http.MethodPost, "/tasks/"+task.ID+"/offers", "P1", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
		assert.Equal(t, "invalid_offer_terms", decode[dto.ErrorResponse](t, rec).Code, body)
	}

	rec := a.do(http.MethodPost, "/tasks/missing/offers", "P1", `{"hourly_rate": 0, "message": ""}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "task_not_found", decode[dto.ErrorResponse](t, rec).Code)
}

func TestHandler_EmptyListsAreArrays(t *testing.T) {
	a := newAPI(t)
	task := a.createTask(t, "owner")

	for _, path := range []string{
		"/tasks/" + task.ID + "/offers",
		"/providers/P1/offers",
		"/providers/P1/skills",
		"/providers/P1/tasks",
		"/tasks?status=completed",
	} {
		rec := a.do(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "null", path)
	}
}

func TestHandler_OfferLookups(t *testing.T) {
	a := newAPI(t)

	task := a.createTask(t, "owner")
	offer := a.submitOffer(t, task.ID, "P1")

	rec := a.do(http.MethodGet, "/offers/"+offer.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, offer.ID, decode[model.Offer](t, rec).ID)

	rec = a.do(http.MethodGet, "/offers/missing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "offer_not_found", decode[dto.ErrorResponse](t, rec).Code)

	rec = a.do(http.MethodGet, "/providers/P1/offers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), offer.ID)

	rec = a.do(http.MethodGet, "/providers/P2/offers", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestHandler_SkillsDriveProviderFeed(t *testing.T) {
	a := newAPI(t)

	task := a.createTask(t, "owner")

	rec := a.do(http.MethodGet, "/providers/P1/tasks", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":0`)

	rec = a.do(http.MethodPost, "/skills", "P1",
		`{"category": "Tutoring", "experience": 4, "work_type": "Online", "hourly_rate": 35}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	skill := decode[model.Skill](t, rec)

	rec = a.do(http.MethodPut, "/skills/"+skill.ID, "P2",
		`{"category": "Tutoring", "experience": 5, "work_type": "Online", "hourly_rate": 35}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodGet, "/providers/P1/tasks", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), task.ID)

	rec = a.do(http.MethodGet, "/providers/P1/skills", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), skill.ID)
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	a := newAPI(t)

	a.createTask(t, "owner")

	rec := a.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskmarket_task_transitions_total")
	assert.Contains(t, rec.Body.String(), `route="/tasks"`)
}
