package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbs-school/receipts-api/internal/domain/entity"
)

// fakeIdempotencyRepo is an in-memory IdempotencyRepository keyed by
// header value + user, mirroring the GORM implementation's contract.
type fakeIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (f *fakeIdempotencyRepo) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	f.keys[key.Key+"|"+key.UserID.String()] = key
	return nil
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	ikey, ok := f.keys[key+"|"+userID.String()]
	if !ok {
		return nil, nil
	}
	return ikey, nil
}

func (f *fakeIdempotencyRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

type idempotencyFixture struct {
	router       *gin.Engine
	handlerCalls int
}

// newIdempotencyFixture builds a router where the handler returns a fresh
// body on every execution, so a replayed response is distinguishable from
// a re-run.
func newIdempotencyFixture(repo *fakeIdempotencyRepo, userID uuid.UUID, handlerStatus int) *idempotencyFixture {
	gin.SetMode(gin.TestMode)

	fx := &idempotencyFixture{router: gin.New()}
	fx.router.POST("/receipts",
		func(c *gin.Context) {
			c.Set("user_id", userID)
		},
		Idempotency(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			fx.handlerCalls++
			c.JSON(handlerStatus, gin.H{"execution": uuid.New().String()})
		},
	)
	return fx
}

func (fx *idempotencyFixture) post(key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/receipts", nil)
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	fx := newIdempotencyFixture(newFakeIdempotencyRepo(), uuid.New(), http.StatusCreated)

	first := fx.post("submit-1")
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, 1, fx.handlerCalls)

	second := fx.post("submit-1")
	assert.Equal(t, 1, fx.handlerCalls, "retried submission must not run the handler again")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyDistinctKeysRunSeparately(t *testing.T) {
	fx := newIdempotencyFixture(newFakeIdempotencyRepo(), uuid.New(), http.StatusCreated)

	first := fx.post("submit-1")
	second := fx.post("submit-2")

	assert.Equal(t, 2, fx.handlerCalls)
	assert.NotEqual(t, first.Body.String(), second.Body.String())
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyKeysAreScopedPerUser(t *testing.T) {
	repo := newFakeIdempotencyRepo()
	userA := newIdempotencyFixture(repo, uuid.New(), http.StatusCreated)
	userB := newIdempotencyFixture(repo, uuid.New(), http.StatusCreated)

	userA.post("submit-1")
	second := userB.post("submit-1")

	assert.Equal(t, 1, userA.handlerCalls)
	assert.Equal(t, 1, userB.handlerCalls, "another user's key must not replay")
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	fx := newIdempotencyFixture(newFakeIdempotencyRepo(), uuid.New(), http.StatusCreated)

	fx.post("")
	fx.post("")

	assert.Equal(t, 2, fx.handlerCalls)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	fx := newIdempotencyFixture(newFakeIdempotencyRepo(), uuid.New(), http.StatusUnprocessableEntity)

	fx.post("submit-1")
	second := fx.post("submit-1")

	assert.Equal(t, 2, fx.handlerCalls, "a failed submission must be retryable")
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}
