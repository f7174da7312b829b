package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergingtonactivities/docs"
	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/delivery/http/middleware"
	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/metrics"
	"mergingtonactivities/internal/repository/memory"
	"mergingtonactivities/internal/services"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestServer wires the builtin catalog end to end behind the full middleware chain.
func newTestServer(t *testing.T, m *metrics.Metrics) *httptest.Server {
	t.Helper()
	repo := memory.NewActivityRepository(memory.BuiltinCatalog())
	var opts []services.ActivityServiceOption
	if m != nil {
		opts = append(opts, services.WithRecorder(m))
	}
	svc := services.NewActivityService(repo, testLogger, opts...)
	srv := httptest.NewServer(NewRouter(RouterConfig{
		Logger:     testLogger,
		Activities: controllers.NewActivityController(testLogger, svc),
		Metrics:    m,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func listActivities(t *testing.T, srv *httptest.Server) map[string]domain.Activity {
	t.Helper()
	resp, body := do(t, http.MethodGet, srv.URL+"/activities")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var activities map[string]domain.Activity
	require.NoError(t, json.Unmarshal(body, &activities))
	return activities
}

func detailOf(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Detail
}

func TestRouter_RootRedirectsToLandingPage(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, _ := do(t, http.MethodGet, srv.URL+"/")
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/static/index.html", resp.Header.Get("Location"))

	resp, body := do(t, http.MethodGet, srv.URL+"/static/index.html")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "Mergington High School")

	resp, body = do(t, http.MethodGet, srv.URL+"/static/app.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/activities")
}

func TestRouter_ListActivities(t *testing.T) {
	srv := newTestServer(t, nil)

	activities := listActivities(t, srv)
	require.Len(t, activities, 9)
	chess := activities["Chess Club"]
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)

	resp, _ := do(t, http.MethodGet, srv.URL+"/activities")
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestRouter_SignupAndUnregisterFlow(t *testing.T) {
	srv := newTestServer(t, nil)
	base := srv.URL + "/activities/Math%20Club"
	email := "newstudent@mergington.edu"

	resp, body := do(t, http.MethodPost, base+"/signup?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Signed up newstudent@mergington.edu for Math Club"}`, string(body))
	assert.Equal(t, []string{"noah@mergington.edu", email}, listActivities(t, srv)["Math Club"].Participants)

	resp, body = do(t, http.MethodPost, base+"/signup?email="+email)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Student is already signed up for this activity", detailOf(t, body))

	resp, body = do(t, http.MethodDelete, base+"/unregister?email="+email)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Unregistered newstudent@mergington.edu from Math Club"}`, string(body))
	assert.Equal(t, []string{"noah@mergington.edu"}, listActivities(t, srv)["Math Club"].Participants)

	resp, body = do(t, http.MethodDelete, base+"/unregister?email="+email)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Student is not signed up for this activity", detailOf(t, body))
}

func TestRouter_ActivityFull(t *testing.T) {
	srv := newTestServer(t, nil)
	base := srv.URL + "/activities/Chess%20Club/signup?email="

	for i := 0; i < 10; i++ {
		resp, _ := do(t, http.MethodPost, base+"student"+string(rune('a'+i))+"@mergington.edu")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, body := do(t, http.MethodPost, base+"late@mergington.edu")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Activity is full", detailOf(t, body))
	assert.Len(t, listActivities(t, srv)["Chess Club"].Participants, 12)
}

func TestRouter_Errors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantDetail string
	}{
		{"signup unknown activity", http.MethodPost, "/activities/Underwater%20Basket%20Weaving/signup?email=a@mergington.edu", http.StatusNotFound, "Activity not found"},
		{"unregister unknown activity", http.MethodDelete, "/activities/Knitting/unregister?email=a@mergington.edu", http.StatusNotFound, "Activity not found"},
		{"names are case sensitive", http.MethodPost, "/activities/chess%20club/signup?email=a@mergington.edu", http.StatusNotFound, "Activity not found"},
		{"signup without email", http.MethodPost, "/activities/Chess%20Club/signup", http.StatusUnprocessableEntity, ""},
		{"unregister without email", http.MethodDelete, "/activities/Chess%20Club/unregister", http.StatusUnprocessableEntity, ""},
		{"history without audit log", http.MethodGet, "/activities/Chess%20Club/history", http.StatusServiceUnavailable, "Roster history is not enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := listActivities(t, srv)
			resp, body := do(t, tt.method, srv.URL+tt.path)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, detailOf(t, body))
			} else {
				assert.NotEmpty(t, detailOf(t, body))
			}
			assert.Equal(t, before, listActivities(t, srv))
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := do(t, http.MethodGet, srv.URL+"/activities/Chess%20Club/signup?email=a@mergington.edu")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, metrics.New(prometheus.NewRegistry()))

	resp, body := do(t, http.MethodGet, srv.URL+"/healthz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, _ = do(t, http.MethodPost, srv.URL+"/activities/Art%20Club/signup?email=painter@mergington.edu")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.True(t, strings.Contains(text, `activities_roster_changes_total{activity="Art Club",operation="signup",outcome="success"} 1`), text)
	assert.Contains(t, text, `route="POST /activities/{activityName}/signup"`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, _ := do(t, http.MethodGet, srv.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_MetricsCountRateLimitedAndPreflight(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := services.NewActivityService(memory.NewActivityRepository(memory.BuiltinCatalog()), testLogger)
	srv := httptest.NewServer(NewRouter(RouterConfig{
		Logger:         testLogger,
		Activities:     controllers.NewActivityController(testLogger, svc),
		Metrics:        m,
		Limiter:        middleware.NewClientLimiter(0.001, 1),
		AllowedOrigins: []string{"https://example.edu"},
	}))
	t.Cleanup(srv.Close)

	resp, _ := do(t, http.MethodGet, srv.URL+"/activities")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, srv.URL+"/activities")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/activities/Chess%20Club/signup", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.edu")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	preflight.Body.Close()
	require.Equal(t, http.StatusNoContent, preflight.StatusCode)

	// The limiter would reject a scrape through the router, so read the registry directly.
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	text := rr.Body.String()
	assert.Contains(t, text, `activities_http_requests_total{method="GET",route="GET /activities",status="200"} 1`)
	assert.Contains(t, text, `activities_http_requests_total{method="GET",route="rate_limited",status="429"} 1`)
	assert.Contains(t, text, `activities_http_requests_total{method="OPTIONS",route="preflight",status="204"} 1`)
}

func TestRouter_ServesDocumentedOperations(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, raw := do(t, http.MethodGet, srv.URL+"/swagger/doc.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, docs.SwaggerInfo.Title, doc.Info.Title)

	var operations []string
	for path, methods := range doc.Paths {
		for method := range methods {
			operations = append(operations, strings.ToUpper(method)+" "+path)
		}
	}
	sort.Strings(operations)
	require.NotEmpty(t, operations)

	query := map[string]string{
		"POST":   "?email=documented@mergington.edu",
		"DELETE": "?email=michael@mergington.edu",
	}
	for _, op := range operations {
		method, path, _ := strings.Cut(op, " ")
		target := strings.ReplaceAll(path, "{activityName}", "Chess%20Club") + query[method]
		resp, body := do(t, method, srv.URL+target)
		// History answers 503 without an audit log; only 404 and 405 mean unrouted.
		assert.NotContains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, resp.StatusCode, "%s: %s", op, body)
	}
}
