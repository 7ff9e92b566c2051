package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivery/backend/internal/model"
	"hivery/backend/internal/service"
	"hivery/backend/internal/store/badgerstore"
	"hivery/backend/internal/store/storetest"
	apperrors "hivery/backend/pkg/errors"
)

type fakeService struct {
	err         error
	comparedA   int
	comparedB   int
	gotFilter   bool
	personFound bool
}

func (f *fakeService) EmployeesByCompany(_ context.Context, companyID int) ([]service.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []service.Employee{{ID: 1, Email: "thor@gmail.com"}}, nil
}

func (f *fakeService) PersonByID(_ context.Context, id int) (*service.PersonProfile, bool, error) {
	if f.err != nil || !f.personFound {
		return nil, false, f.err
	}
	return &service.PersonProfile{Person: model.Person{ID: id}}, true, nil
}

func (f *fakeService) CompareFriends(_ context.Context, a, b int, pred service.FriendPredicate) (*service.Comparison, error) {
	f.comparedA, f.comparedB = a, b
	f.gotFilter = pred != nil
	if f.err != nil {
		return nil, f.err
	}
	return &service.Comparison{CommonFriendIDs: []int{}}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router http.Handler, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &body)
	}
	return w, body
}

func seededRouter(t *testing.T) http.Handler {
	t.Helper()
	s, err := badgerstore.Open(badgerstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.SaveAll(context.Background(), storetest.Dataset()))

	svc, err := service.New(s, 16, nil)
	require.NoError(t, err)
	return NewRouter(svc, nil)
}

func TestHealthEndpoint(t *testing.T) {
	w, body := serve(t, NewRouter(&fakeService{}, nil), "GET", "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	NewRouter(&fakeService{}, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestEmployeesEndpoint(t *testing.T) {
	router := seededRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/company/1/employee", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"employees":[{"pid":1,"email":"thor@gmail.com"}]}`, w.Body.String())

	w, _ = serve(t, router, "GET", "/company/3/employee")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"employees":[]}`, w.Body.String())
}

func TestPersonEndpoint(t *testing.T) {
	router := seededRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/person/2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"username": "ironman@gmail.com",
		"age": 40,
		"fruits": ["orange"],
		"vegetables": ["capsicum"]
	}`, w.Body.String())

	w, _ = serve(t, router, "GET", "/person/1")
	assert.JSONEq(t, `{"username":"thor@gmail.com","age":65,"fruits":[],"vegetables":[]}`, w.Body.String())
}

func TestCompareEndpoint(t *testing.T) {
	router := seededRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/person/1/compare?other_id=4", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"this":  {"id": 1, "name": "Thor", "age": 65, "address": "SYD", "phone": "+61459849686"},
		"other": {"id": 4, "name": "Hulk", "age": 40, "address": "BNE", "phone": "+61480123456"},
		"common_friend_ids": [2, 3]
	}`, w.Body.String())
}

func TestCompareEndpoint_UsesFixedFilter(t *testing.T) {
	fake := &fakeService{}
	w, _ := serve(t, NewRouter(fake, nil), "GET", "/person/7/compare?other_id=8")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, fake.comparedA)
	assert.Equal(t, 8, fake.comparedB)
	assert.True(t, fake.gotFilter)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		svc        *fakeService
		path       string
		wantStatus int
		wantMsg    string
	}{
		{"non numeric company id", &fakeService{}, "/company/abc/employee", http.StatusBadRequest, "bad parameter"},
		{"non numeric person id", &fakeService{}, "/person/x1", http.StatusBadRequest, "bad parameter"},
		{"missing other_id", &fakeService{}, "/person/1/compare", http.StatusBadRequest, "bad parameter"},
		{"non numeric other_id", &fakeService{}, "/person/1/compare?other_id=me", http.StatusBadRequest, "bad parameter"},
		{"unknown company", &fakeService{err: apperrors.NewUnknownInstance("company", 999)}, "/company/999/employee", http.StatusNotFound, "resource not found"},
		{"absent person", &fakeService{}, "/person/999", http.StatusNotFound, "resource not found"},
		{"unknown person in compare", &fakeService{err: apperrors.NewUnknownInstance("person", 999)}, "/person/1/compare?other_id=999", http.StatusNotFound, "resource not found"},
		{"store failure", &fakeService{err: errors.New("boom")}, "/person/1", http.StatusInternalServerError, "an unexpected error has occurred"},
		{"unknown route", &fakeService{}, "/nope", http.StatusNotFound, "resource not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serve(t, NewRouter(tt.svc, nil), "GET", tt.path)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestCORSAndRequestID(t *testing.T) {
	router := NewRouter(&fakeService{}, nil)

	w, _ := serve(t, router, "GET", "/health")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "x-requested-with", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w, _ = serve(t, router, "OPTIONS", "/person/1")
	assert.Equal(t, http.StatusNoContent, w.Code)
}
