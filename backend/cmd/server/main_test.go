package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hivery/backend/internal/api"
	"hivery/backend/pkg/config"
	apperrors "hivery/backend/pkg/errors"
)

const (
	testCompanies = `[{"index": 0, "company": "Hivery"}]`
	testPeople    = `[
		{"index": 1, "name": "Thor", "age": 65, "eyeColor": "brown", "has_died": false, "company_id": 1,
		 "email": "thor@gmail.com", "friends": [{"index": 2}, {"index": 3}], "favouriteFood": ["Orange"]},
		{"index": 2, "name": "Ironman", "age": 40, "eyeColor": "brown", "has_died": false, "company_id": 1,
		 "email": "ironman@gmail.com", "friends": [{"index": 1}, {"index": 3}], "favouriteFood": []},
		{"index": 3, "name": "Hulk", "age": 40, "eyeColor": "brown", "has_died": false, "company_id": 1,
		 "email": "hulk@gmail.com", "friends": [{"index": 1}, {"index": 2}], "favouriteFood": []}
	]`
	testFoods = `{"orange": "fruit"}`
)

func testConfig(t *testing.T, people string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	return &config.Config{
		Port:            "0",
		Env:             "test",
		StoreBackend:    config.BackendBadger,
		BadgerInMemory:  true,
		ResetOnStart:    true,
		CompaniesFile:   write("companies.json", testCompanies),
		PeopleFile:      write("people.json", people),
		FoodsFile:       write("foods.json", testFoods),
		PersonCacheSize: 8,
	}
}

func TestStart_ServesImportedData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st, svc, err := start(context.Background(), testConfig(t, testPeople))
	require.NoError(t, err)
	defer st.Close()

	router := api.NewRouter(svc, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/person/1/compare?other_id=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"common_friend_ids":[3]`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/person/1", nil)
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"username":"thor@gmail.com","age":65,"fruits":["orange"],"vegetables":[]}`, w.Body.String())
}

func TestStart_FailsOnInvalidDataset(t *testing.T) {
	people := `[{"index": 1, "company_id": 7}]`

	_, _, err := start(context.Background(), testConfig(t, people))
	require.Error(t, err)
	assert.True(t, apperrors.IsImportError(err))
}
