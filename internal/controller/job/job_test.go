package job

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"JobJumper-backend/internal/auth"
	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/fallback"
	"JobJumper-backend/internal/logger"
	"JobJumper-backend/internal/middleware"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/store"
	"JobJumper-backend/internal/testutil"
	"JobJumper-backend/internal/tracker"
)

var testDB *database.DBinstanceStruct
var testTracker *tracker.Tracker

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	testTracker = tracker.New(store.NewGormStore(testDB), fallback.NewInMemoryCache(), logger.NewNop())

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func jobRouter() *gin.Engine {
	r := gin.Default()
	jc := NewJobController(testTracker)
	grp := r.Group("/jobs", middleware.RequireAuth(testDB))
	grp.GET("", jc.ListHandler)
	grp.GET("/stats", jc.StatsHandler)
	grp.POST("", jc.CreateHandler)
	grp.PATCH("/:id", jc.UpdateHandler)
	grp.DELETE("/:id", jc.DeleteHandler)
	return r
}

func seekerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, testTracker, database.TestUserSeeker1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestListJobs_ReturnsSeededRecords(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Body.String(), database.TestJob1.Company)
	assert.Contains(t, rec.Body.String(), database.TestJob2.Company)
}

func TestCreateJob_DefaultsAndPersists(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"company": "NimbusWorks",
		"role":    "Platform Engineer",
	}, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.NotContains(t, resp, "warning")

	jobObj, ok := resp["job"].(map[string]interface{})
	require.True(t, ok, "job object missing in response")
	assert.Equal(t, "NimbusWorks", jobObj["company"])
	// Absent status and origin fall back to the defaults.
	assert.Equal(t, model.JobStatusApplied, jobObj["status"])
	assert.Equal(t, model.JobOriginApplication, jobObj["origin"])
	assert.Greater(t, jobObj["id"].(float64), float64(0), "id should be reconciled to the store-assigned one")
}

func TestUpdateJob_PartialPatch(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	_, created := testutil.MakeJSONRequest(gin.H{
		"company":  "PatchTarget",
		"role":     "Backend Engineer",
		"location": "Remote",
	}, token, r, "/jobs", http.MethodPost)
	jobObj := created["job"].(map[string]interface{})
	id := int64(jobObj["id"].(float64))

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"status": model.JobStatusInterview,
	}, token, r, fmt.Sprintf("/jobs/%d", id), http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	patched := resp["job"].(map[string]interface{})
	assert.Equal(t, model.JobStatusInterview, patched["status"])
	// Fields absent from the patch keep their prior values.
	assert.Equal(t, "PatchTarget", patched["company"])
	assert.Equal(t, "Remote", patched["location"])
}

func TestUpdateJob_NotFound(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"status": model.JobStatusOffer,
	}, token, r, "/jobs/999999", http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJob_RemovedFromListing(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	_, created := testutil.MakeJSONRequest(gin.H{
		"company": "ShortLived",
		"role":    "Contractor",
	}, token, r, "/jobs", http.MethodPost)
	jobObj := created["job"].(map[string]interface{})
	id := int64(jobObj["id"].(float64))

	rec, resp := testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/jobs/%d", id), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Job deleted", resp["message"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "ShortLived")
}

func TestStats_CountsByStatus(t *testing.T) {
	token := seekerToken(t)
	r := jobRouter()

	_, created := testutil.MakeJSONRequest(gin.H{
		"company": "OfferCo",
		"role":    "Staff Engineer",
		"status":  model.JobStatusOffer,
		"origin":  model.JobOriginOffer,
	}, token, r, "/jobs", http.MethodPost)
	jobObj := created["job"].(map[string]interface{})
	id := int64(jobObj["id"].(float64))

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/jobs/stats", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, resp["offers"].(float64), float64(1))
	assert.GreaterOrEqual(t, resp["total"].(float64), float64(3))

	// Accepting the offer moves nothing: Accepted still counts into offers.
	offersBefore := resp["offers"].(float64)
	testutil.MakeJSONRequest(gin.H{"status": model.JobStatusAccepted}, token, r, fmt.Sprintf("/jobs/%d", id), http.MethodPatch)
	rec, resp = testutil.MakeJSONRequest(nil, token, r, "/jobs/stats", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, offersBefore, resp["offers"].(float64))
}

func TestJobs_WithoutToken(t *testing.T) {
	r := jobRouter()
	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
