package handlers

import (
	"errors"
	"net/http"
	"testing"

	"gator-threads/internal/database/mocks"
	"gator-threads/internal/models"
	"gator-threads/internal/utils"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestStoreErrors_MessageExposure(t *testing.T) {
	driverErr := errors.New("pq: connection refused")
	storeErr := utils.NewAppError(utils.ErrDatabase, "failed to query all users", driverErr)

	tests := []struct {
		name            string
		hideStoreErrors bool
		want            string
	}{
		{name: "driver message passed through", hideStoreErrors: false, want: `{"error":"failed to query all users: pq: connection refused"}`},
		{name: "driver message hidden", hideStoreErrors: true, want: `{"error":"failed to query all users"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			store.EXPECT().ListUsers(gomock.Any()).Return(nil, storeErr)

			router := newTestRouter(t, NewServer(store, nil, nil, tt.hideStoreErrors))
			rec := doRequest(router, http.MethodGet, "/users", "")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestStoreErrors_EveryRoute(t *testing.T) {
	boom := utils.NewAppError(utils.ErrDatabase, "store failed", errors.New("disk I/O error"))

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantInBody string
		expect     func(s *mocks.MockStore)
	}{
		{
			name: "list subreddits", wantInBody: "store failed: disk I/O error", method: http.MethodGet, path: "/subreddits",
			expect: func(s *mocks.MockStore) { s.EXPECT().ListSubreddits(gomock.Any()).Return(nil, boom) },
		},
		{
			name: "create subreddit", wantInBody: "store failed: disk I/O error",
			method: http.MethodPost, path: "/subreddits", body: `{"name":"n","description":"d"}`,
			expect: func(s *mocks.MockStore) { s.EXPECT().CreateSubreddit(gomock.Any(), gomock.Any()).Return(nil, boom) },
		},
		{
			name: "list threads", wantInBody: "store failed: disk I/O error", method: http.MethodGet, path: "/threads",
			expect: func(s *mocks.MockStore) { s.EXPECT().ListThreads(gomock.Any()).Return(nil, boom) },
		},
		{
			name: "delete thread", wantInBody: "store failed: disk I/O error", method: http.MethodDelete, path: "/threads/3",
			expect: func(s *mocks.MockStore) { s.EXPECT().DeleteThread(gomock.Any(), int64(3)).Return(nil, boom) },
		},
		{
			name: "get user", wantInBody: "store failed: disk I/O error", method: http.MethodGet, path: "/users/3",
			expect: func(s *mocks.MockStore) { s.EXPECT().GetUser(gomock.Any(), int64(3)).Return(nil, boom) },
		},
		{
			name: "unclassified error", wantInBody: "internal server error: something odd", method: http.MethodGet, path: "/threads",
			expect: func(s *mocks.MockStore) {
				s.EXPECT().ListThreads(gomock.Any()).Return(nil, errors.New("something odd"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockStore(ctrl)
			tt.expect(store)

			router := newTestRouter(t, NewServer(store, nil, nil, false))
			rec := doRequest(router, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
		})
	}
}

func TestHideStoreErrors_KeepsClientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().DeleteThread(gomock.Any(), int64(5)).Return(nil, utils.NewNotFoundError("Thread"))

	router := newTestRouter(t, NewServer(store, nil, nil, true))

	rec := doRequest(router, http.MethodDelete, "/threads/5", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Thread not found"}`, rec.Body.String())

	rec = doRequest(router, http.MethodPost, "/users", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestCreateThread_PassesPathAndBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	author := int64(7)
	title, content := "Hi", "Hello"
	store.EXPECT().
		CreateThread(gomock.Any(), models.NewThread{SubredditID: 4, AuthorID: &author, Title: &title, Content: &content}).
		Return(&models.Thread{ID: 9, SubredditID: 4, AuthorID: 7, Title: "Hi", Content: "Hello"}, nil)

	router := newTestRouter(t, NewServer(store, nil, nil, false))
	rec := doRequest(router, http.MethodPost, "/threads/4", `{"author_id":7,"title":"Hi","content":"Hello"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":9,"subreddit_id":4,"author_id":7,"title":"Hi","content":"Hello"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	router := newTestRouter(t, NewServer(store, nil, nil, false))

	store.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	store.EXPECT().Ping(gomock.Any()).Return(utils.NewAppError(utils.ErrUnavailable, "database unreachable", errors.New("dial tcp")))
	rec = doRequest(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestMetricsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)

	router := newTestRouter(t, NewServer(store, nil, nil, false))
	assert.Equal(t, http.StatusNotFound, doRequest(router, http.MethodGet, "/metrics", "").Code)

	metrics := utils.NewMetricsCollector()
	metrics.IncrementRequests()
	router = newTestRouter(t, NewServer(store, nil, metrics, false))
	rec := doRequest(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["requestCount"])
}
