package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"printpack/models"
	"printpack/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, storage.AutoMigrate(db))

	r := gin.New()
	r.POST("/api/s1/projects", CreateProject(db))
	r.GET("/api/s1/projects/:id", GetProject(db))
	r.POST("/api/s1/jobs", CreateJob(db))
	r.POST("/api/s1/assignjobs", CreateAssignJob(db))
	r.GET("/api/s1/assignjobs", GetAssignJobs(db))
	r.PUT("/api/s1/assignjobs/employee-complete/:id", EmployeeCompleteJob(db))
	r.POST("/api/s1/brands", CreateBrand(db))
	r.DELETE("/api/s1/brands", DeleteBrands(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func seedHandlerFixtures(t *testing.T, r *gin.Engine) (projectID, jobID int) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/s1/projects", gin.H{
		"project_name": "Spring Sleeve Run",
		"client_id":    1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	projectID = int(data["id"].(float64))

	w = doJSON(t, r, http.MethodPost, "/api/s1/jobs", gin.H{
		"project_id": projectID,
		"brand_name": "Fizz",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data = decodeEnvelope(t, w)["data"].(map[string]interface{})
	jobID = int(data["id"].(float64))
	return projectID, jobID
}

func TestCreateAssignJobRoundTrip(t *testing.T) {
	r, db := newTestRouter(t)
	projectID, jobID := seedHandlerFixtures(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/s1/assignjobs", gin.H{
		"project_id":    projectID,
		"job_ids":       []int{jobID},
		"production_id": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Jobs assigned successfully", envelope["message"])
	data := envelope["data"].(map[string]interface{})
	assert.NotZero(t, data["assignment_id"])

	var job models.Job
	require.NoError(t, db.First(&job, jobID).Error)
	assert.Equal(t, "in_progress", job.JobStatus)
	assert.Equal(t, "3", job.Assigned)
}

func TestCreateAssignJobValidationEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/s1/assignjobs", gin.H{
		"project_id": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Required fields missing", envelope["message"])
	assert.NotContains(t, envelope["message"], "validation error")
}

func TestGetAssignJobsAlwaysReturnsJobIDArray(t *testing.T) {
	r, _ := newTestRouter(t)
	projectID, jobID := seedHandlerFixtures(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/s1/assignjobs", gin.H{
		"project_id":  projectID,
		"job_ids":     []int{jobID},
		"employee_id": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/s1/assignjobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// job_ids serializes as a JSON array even for relational storage.
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`"job_ids":[%d]`, jobID))
}

func TestEmployeeCompleteUnknownAssignment(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/s1/assignjobs/employee-complete/42", gin.H{
		"job_id": 1,
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Assign job not found", envelope["message"])
}

func TestCreateBrandDuplicateConflict(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/s1/brands", gin.H{"brand_name": "fizz"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Same name again hits the unique index, not a pre-read, so a racing
	// insert gets the same 409.
	w = doJSON(t, r, http.MethodPost, "/api/s1/brands", gin.H{"brand_name": "Fizz"})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Brand already exists", envelope["message"])
}

func TestDeleteBrandsBulk(t *testing.T) {
	r, db := newTestRouter(t)

	var ids []int
	for _, name := range []string{"Fizz", "Pop", "Still"} {
		w := doJSON(t, r, http.MethodPost, "/api/s1/brands", gin.H{"brand_name": name})
		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]interface{})
		ids = append(ids, int(data["id"].(float64)))
	}

	w := doJSON(t, r, http.MethodDelete, "/api/s1/brands", gin.H{"ids": ids[:2]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var remaining int64
	require.NoError(t, db.Model(&models.Brand{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining)

	w = doJSON(t, r, http.MethodDelete, "/api/s1/brands", gin.H{"ids": []int{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathIDRejectsGarbage(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/s1/projects/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
}
