package ingestion

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	httperr "github.com/playground-analytics/aggview/internal/core/errors"
	storagemocks "github.com/playground-analytics/aggview/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 5, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, store *storagemocks.ActivityStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(store, 1)
	svc.nowFn = func() time.Time { return fixedNow }

	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func postActivity(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/activity", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRecordHandler_Success(t *testing.T) {
	body := []byte(`{"tag":"click","plaything_name":"robot","session_id":"s-1","created_ts":42}`)

	mockStore := storagemocks.NewActivityStore(t)
	mockStore.EXPECT().
		SaveActivity(mock.Anything, mock.MatchedBy(func(e *v1.ActivityEvent) bool {
			return e.SessionID == "s-1" &&
				e.Tag != nil && *e.Tag == "click" &&
				e.PlaythingName != nil && *e.PlaythingName == "robot" &&
				e.PlaythingPart == nil &&
				e.SpecificationID == nil &&
				e.CreatedTS == fixedNow.Unix()
		})).
		Return(nil).
		Once()

	resp := postActivity(newTestService(t, mockStore), body)

	require.Equal(t, http.StatusAccepted, resp.Code)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "accepted", result["status"])
	require.Equal(t, float64(fixedNow.Unix()), result["created_ts"])
}

func TestRecordHandler_InvalidJSON(t *testing.T) {
	mockStore := storagemocks.NewActivityStore(t)

	resp := postActivity(newTestService(t, mockStore), []byte("not json"))

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
}

func TestRecordHandler_MissingSessionID(t *testing.T) {
	mockStore := storagemocks.NewActivityStore(t)

	resp := postActivity(newTestService(t, mockStore), []byte(`{"tag":"click","session_id":"  "}`))

	require.Equal(t, http.StatusBadRequest, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "session_id")
}

func TestRecordHandler_StorageError(t *testing.T) {
	mockStore := storagemocks.NewActivityStore(t)
	mockStore.EXPECT().
		SaveActivity(mock.Anything, mock.Anything).
		Return(errors.New("database connection failed")).
		Once()

	resp := postActivity(newTestService(t, mockStore), []byte(`{"session_id":"s-1"}`))

	require.Equal(t, http.StatusInternalServerError, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInternalError, errResp.ErrorType)
}

func TestRecordHandler_BodySizeLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockStore := storagemocks.NewActivityStore(t)
	svc := NewService(mockStore, 0) // 0 defaults to 1MB
	svc.maxBodySizeBytes = 10       // Very small limit

	r := gin.New()
	svc.RegisterRoutes(r)

	resp := postActivity(r, []byte(`{"session_id":"this is definitely more than 10 bytes"}`))

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)

	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	require.Equal(t, httperr.HttpInvalidJsonError, errResp.ErrorType)
	require.Contains(t, errResp.Message, "maximum allowed size")
}

func TestListActivityHandler_Success(t *testing.T) {
	start := fixedNow.Truncate(time.Hour).Unix()
	end := start + 3600

	mockStore := storagemocks.NewActivityStore(t)
	mockStore.EXPECT().
		ListActivity(mock.Anything, start, end, 1).
		Return([]*v1.ActivityEvent{
			{ID: 1, Tag: v1.StringPtr("click"), SessionID: "s-1", CreatedTS: start + 5},
		}, nil).
		Once()

	r := newTestService(t, mockStore)
	req := httptest.NewRequest(http.MethodGet,
		"/v1/activity?start="+strconv.FormatInt(start, 10)+"&end="+strconv.FormatInt(end, 10)+"&limit=1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)

	var events []v1.ActivityEvent
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &events))
	require.Len(t, events, 1)
	require.Equal(t, "s-1", events[0].SessionID)
	require.Equal(t, "click", *events[0].Tag)
}

func TestListActivityHandler_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing start", query: "end=10"},
		{name: "non-numeric end", query: "start=0&end=tomorrow"},
		{name: "end before start", query: "start=100&end=50"},
		{name: "limit too large", query: "start=0&end=10&limit=20000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestService(t, storagemocks.NewActivityStore(t))
			req := httptest.NewRequest(http.MethodGet, "/v1/activity?"+tc.query, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			require.Equal(t, http.StatusBadRequest, resp.Code)

			var errResp httperr.ErrorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
			require.Equal(t, httperr.HttpInvalidQueryError, errResp.ErrorType)
		})
	}
}

func TestListActivityHandler_StoreError(t *testing.T) {
	mockStore := storagemocks.NewActivityStore(t)
	mockStore.EXPECT().
		ListActivity(mock.Anything, int64(0), int64(3600), defaultListLimit).
		Return(nil, errors.New("db failure")).
		Once()

	r := newTestService(t, mockStore)
	req := httptest.NewRequest(http.MethodGet, "/v1/activity?start=0&end=3600", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestListActivityHandler_EmptyRangeReturnsEmptyArray(t *testing.T) {
	mockStore := storagemocks.NewActivityStore(t)
	mockStore.EXPECT().
		ListActivity(mock.Anything, int64(0), int64(3600), 50).
		Return(nil, nil).
		Once()

	r := newTestService(t, mockStore)
	req := httptest.NewRequest(http.MethodGet, "/v1/activity?start=0&end=3600&limit=50", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, "[]", resp.Body.String())
}
