package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"job_board/internal/middleware"
	"job_board/internal/model"
	"job_board/internal/repository/repotest"
	"job_board/internal/service"
	"job_board/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *repotest.Store
	auth   service.AuthService
}

func newTestEnv(t *testing.T, exposeDetails bool) *testEnv {
	t.Helper()
	store := repotest.NewStore()
	auth := service.NewAuthService(store.Users(), store.Admins(), utils.NewJWTUtil("handler-test-secret", 1), nil)
	notices := service.NewNoticeService(store.Notices())
	stats := service.NewStatsService(store.Stats(), nil, nil)

	r := gin.New()
	authMW := middleware.JWTAuthMiddleware(auth)
	NewAuthHandler(auth, exposeDetails).RegisterAuthRoutes(r)
	NewNoticeHandler(notices, stats, exposeDetails).RegisterNoticeRoutes(r, authMW, middleware.UserMiddleware())
	NewAdminHandler(notices, exposeDetails).RegisterAdminRoutes(r, authMW, middleware.AdminMiddleware())
	NewStatsHandler(stats, exposeDetails).RegisterStatsRoutes(r, authMW, middleware.AdminMiddleware())

	return &testEnv{router: r, store: store, auth: auth}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) userToken(t *testing.T, name, phone string) string {
	t.Helper()
	_, token, err := e.auth.Register(context.Background(), name, phone, "secret")
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	_, err := e.auth.ProvisionAdmin(context.Background(), "root", "rootpass")
	require.NoError(t, err)
	_, token, err := e.auth.AdminLogin(context.Background(), "root", "rootpass")
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func noticeBody() gin.H {
	return gin.H{
		"description": "Loaders needed",
		"date":        "15/06/2030",
		"gender":      "male",
		"price":       150000,
		"location":    "Yunusobod",
		"jobType":     "fullTime",
	}
}

func adminNoticeBody() gin.H {
	body := noticeBody()
	body["phone_number"] = "+998711234567"
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad gender", service.ErrValidation), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrAdminRequired, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrNoticeNotFound, http.StatusNotFound},
		{service.ErrUserNotFound, http.StatusNotFound},
		{service.ErrUserAlreadyExists, http.StatusConflict},
		{service.ErrInvalidTransition, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, false)
	creds := gin.H{"name": "Aziz", "phone_number": "+998901112233", "password": "secret"}

	rec := env.do(t, http.MethodPost, "/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decode[map[string]any](t, rec)["token"])

	rec = env.do(t, http.MethodPost, "/register", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", gin.H{"phone_number": "+998901112233", "password": "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", gin.H{"phone_number": "+998901112233", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RegisterMissingField(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(t, http.MethodPost, "/register", "", gin.H{"phone_number": "+998901112233", "password": "secret"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_AdminLogin(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.auth.ProvisionAdmin(context.Background(), "root", "rootpass")
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/admin", "", gin.H{"login": "root", "password": "rootpass"})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode[map[string]any](t, rec)["token"].(string)
	identity, err := env.auth.Verify(token, true)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())

	rec = env.do(t, http.MethodPost, "/admin", "", gin.H{"login": "root", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNoticeHandler_CreateAndListOwn(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.userToken(t, "Aziz", "+998901112233")

	rec := env.do(t, http.MethodPost, "/notices", token, noticeBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/notice", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notices := decode[[]model.Notice](t, rec)
	require.Len(t, notices, 1)
	assert.Equal(t, model.NoticeStatusProcess, notices[0].Status)
	assert.Equal(t, "+998901112233", notices[0].PhoneNumber)
	assert.Equal(t, "Aziz", notices[0].UserName)
}

func TestNoticeHandler_CreateValidation(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.userToken(t, "Aziz", "+998901112233")

	body := noticeBody()
	body["gender"] = "robot"
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/notices", token, body).Code)

	body = noticeBody()
	delete(body, "date")
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/notices", token, body).Code)

	body = noticeBody()
	body["jobType"] = "gig"
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/notices", token, body).Code)

	body = noticeBody()
	body["price"] = "cheap"
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/notices", token, body).Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/notices", "", noticeBody()).Code)
}

func TestNoticeHandler_CreateWithoutLocationOrJobType(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.userToken(t, "Aziz", "+998901112233")

	rec := env.do(t, http.MethodPost, "/notices", token, gin.H{
		"price":       50000,
		"gender":      "male",
		"date":        "01/01/2030",
		"description": "test",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	id := int64(decode[map[string]any](t, rec)["noticeId"].(float64))
	stored, ok := env.store.Notice(id)
	require.True(t, ok)
	assert.Equal(t, 50000.0, stored.Price)
	assert.Empty(t, stored.Location)
	assert.Empty(t, stored.JobType)
}

func TestNoticeHandler_DeleteByStranger(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.userToken(t, "Aziz", "+998901112233")
	stranger := env.userToken(t, "Bobur", "+998935556677")

	rec := env.do(t, http.MethodPost, "/notices", owner, noticeBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode[map[string]any](t, rec)["noticeId"].(float64))
	path := fmt.Sprintf("/notice/%d", id)

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, path, stranger, nil).Code)
	_, kept := env.store.Notice(id)
	assert.True(t, kept)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, path, owner, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodDelete, "/notice/abc", owner, nil).Code)
}

func TestNoticeHandler_WorkerFeed(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.userToken(t, "Aziz", "+998901112233")
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/notices", token, noticeBody()).Code)

	rec := env.do(t, http.MethodGet, "/worker", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]model.Notice](t, rec))
	assert.Equal(t, int64(1), env.store.Counter(model.StatWorkerVisits))
}

func TestAdminHandler_Moderation(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.userToken(t, "Aziz", "+998901112233")
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/notices", user, noticeBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode[map[string]any](t, rec)["noticeId"].(float64))

	rec = env.do(t, http.MethodGet, "/admin/inprogress", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.Notice](t, rec), 1)

	statusPath := fmt.Sprintf("/admin/notice/%d/status", id)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPut, statusPath, admin, nil).Code)
	assert.Equal(t, http.StatusConflict, env.do(t, http.MethodPut, statusPath, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/admin/notice/999/status", admin, nil).Code)

	rec = env.do(t, http.MethodGet, "/admin/allnotices", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	approved := decode[[]model.Notice](t, rec)
	require.Len(t, approved, 1)
	assert.Equal(t, model.NoticeStatusCompleted, approved[0].Status)
}

func TestAdminHandler_UserTokenRejected(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.userToken(t, "Aziz", "+998901112233")

	for _, path := range []string{"/admin/allnotices", "/admin/inprogress", "/stats"} {
		assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, path, user, nil).Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/noticesaddadmin", user, adminNoticeBody()).Code)
}

func TestAdminHandler_CreateUpdateDelete(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPost, "/noticesaddadmin", admin, adminNoticeBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	id := int64(decode[map[string]any](t, rec)["noticeId"].(float64))
	path := fmt.Sprintf("/admin/notice/%d", id)

	rec = env.do(t, http.MethodGet, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	notice := decode[model.Notice](t, rec)
	assert.Equal(t, model.NoticeStatusCompleted, notice.Status)
	assert.True(t, notice.Owner.IsAdmin())

	update := adminNoticeBody()
	update["price"] = 200000
	update["jobType"] = "freelance"
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPut, path, admin, update).Code)
	stored, _ := env.store.Notice(id)
	assert.Equal(t, 200000.0, stored.Price)
	assert.Equal(t, model.JobTypeFreelance, stored.JobType)

	update["price"] = "2000"
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPut, path, admin, update).Code)
	stored, _ = env.store.Notice(id)
	assert.Equal(t, 2000.0, stored.Price)

	partial := gin.H{"price": 10}
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPut, path, admin, partial).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/admin/notice/999", admin, update).Code)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, path, admin, nil).Code)
}

func TestStatsHandler(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.adminToken(t)

	for want := int64(1); want <= 2; want++ {
		rec := env.do(t, http.MethodGet, "/home_visits", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[struct {
			Message    string `json:"message"`
			HomeVisits int64  `json:"home_visits"`
		}](t, rec)
		assert.Equal(t, "Visit recorded", body.Message)
		assert.Equal(t, want, body.HomeVisits)
	}
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/stats/track-call-click", "", nil).Code)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/noticesaddadmin", admin, adminNoticeBody()).Code)

	rec := env.do(t, http.MethodGet, "/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snapshot := decode[model.StatsSnapshot](t, rec)
	assert.Equal(t, int64(2), snapshot.HomeVisits)
	assert.Equal(t, int64(1), snapshot.CallButtonClicks)
	assert.Equal(t, int64(1), snapshot.NoticeCount)
	assert.Equal(t, int64(1), snapshot.AdminNotices)
	assert.Equal(t, int64(0), snapshot.UserNoticeCount)
}

func TestInternalErrorDetails(t *testing.T) {
	for _, expose := range []bool{false, true} {
		env := newTestEnv(t, expose)
		admin := env.adminToken(t)
		env.store.Err = errors.New("connection reset by peer")

		rec := env.do(t, http.MethodGet, "/admin/allnotices", admin, nil)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode[map[string]any](t, rec)
		assert.Equal(t, "Failed to get notices", body["error"])
		_, hasDetails := body["details"]
		assert.Equal(t, expose, hasDetails)
	}
}

func TestCounterFailureIsInvisible(t *testing.T) {
	env := newTestEnv(t, false)
	env.store.Err = errors.New("disk full")

	rec := env.do(t, http.MethodGet, "/home_visits", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Visit recorded","home_visits":0}`, rec.Body.String())
}
