package aggregation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	httperr "github.com/playground-analytics/aggview/internal/core/errors"
	"github.com/playground-analytics/aggview/internal/core/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenActivity struct{}

func (brokenActivity) MinCreatedTS(ctx context.Context) (int64, bool, error) {
	return 0, false, errors.New("connection refused")
}

func (brokenActivity) RetrieveActivityRange(ctx context.Context, startTS, endTS int64) ([]*v1.ActivityEvent, error) {
	return nil, errors.New("connection refused")
}

func TestHandleRun_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	activity := memory.NewActivityStore()
	seed(t, activity, facetEvent(hourTS(0)+1, "s1", "t1", "p1", "part1", "spec1"))
	job := newTestJob(activity, memory.NewAggregateStore(), DefaultJobOptions(), hourTS(2))

	r := gin.New()
	job.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/aggregation/run", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Result RunResult `json:"result"`
		Shared bool      `json:"shared"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, StatusCompleted, body.Result.Status)
	assert.Equal(t, 1, body.Result.HoursProcessed)
	assert.Equal(t, "2024-01-01T00", body.Result.FirstHour)
	assert.False(t, body.Shared)
}

func TestHandleRun_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	job := NewJob(nil, nil, DefaultJobOptions())

	r := gin.New()
	job.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/aggregation/run", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Result RunResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, StatusDisabled, body.Result.Status)
}

func TestHandleRun_StoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	job := NewJob(brokenActivity{}, memory.NewAggregateStore(), DefaultJobOptions())
	job.nowFn = func() time.Time { return time.Unix(hourTS(5), 0).UTC() }

	r := gin.New()
	job.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/aggregation/run", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	assert.Equal(t, httperr.HttpAggregationFailedError, errResp.ErrorType)

	details, ok := errResp.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details["error"], "read earliest activity")
}

// cancelOnInsertStore cancels the request context after the first hour record is
// stored and refuses further inserts on a cancelled context, as a database driver would.
type cancelOnInsertStore struct {
	*memory.AggregateStore
	cancel context.CancelFunc
}

func (s *cancelOnInsertStore) InsertHour(ctx context.Context, rec *coreagg.HourAggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.AggregateStore.InsertHour(ctx, rec); err != nil {
		return err
	}
	s.cancel()
	return nil
}

func TestHandleRun_ClientDisconnectDoesNotCutHourShort(t *testing.T) {
	gin.SetMode(gin.TestMode)

	activity := memory.NewActivityStore()
	seed(t, activity,
		facetEvent(hourTS(3)+1, "s1", "t1", "p1", "part1", "spec1"),
		facetEvent(hourTS(3)+2, "s2", "t2", "p1", "part1", "spec1"),
	)

	reqCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	backing := memory.NewAggregateStore()
	aggregates := &cancelOnInsertStore{AggregateStore: backing, cancel: cancel}

	job := NewJob(activity, aggregates, DefaultJobOptions())
	job.nowFn = func() time.Time { return time.Unix(hourTS(5), 0).UTC() }

	r := gin.New()
	job.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodPost, "/v1/aggregation/run", nil).WithContext(reqCtx)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.Error(t, reqCtx.Err(), "request context should have been cancelled mid-run")

	var t03 int
	for _, h := range backing.Hours() {
		if h.DateHr == "2024-01-01T03" {
			t03++
		}
	}
	assert.Equal(t, 2, t03, "both facet records of the hour must be written")

	next, ok, err := ResolveCursor(context.Background(), activity, backing)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, hourTS(4), next)
}

func TestTrigger_JoinedCallerIsNotBoundToFirstCallersContext(t *testing.T) {
	activity := memory.NewActivityStore()
	seed(t, activity, facetEvent(hourTS(0)+1, "s1", "t1", "p1", "part1", "spec1"))
	job := newTestJob(activity, memory.NewAggregateStore(), DefaultJobOptions(), hourTS(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, _, err := job.Trigger(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, 2, res.HoursProcessed)
}
