package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"councildigest/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeReportStore struct {
	appended []model.ContentReport
	summary  []model.MotionReportCount
	lastCode string
	err      error
}

func (f *fakeReportStore) Append(report model.ContentReport) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, report)
	return nil
}

func (f *fakeReportStore) SummarizeByMotion(meetingCode string) []model.MotionReportCount {
	f.lastCode = meetingCode
	return f.summary
}

func newReportRouter(store ReportStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportHandler(store)
	r.POST("/api/reports", h.SubmitReport)
	r.GET("/api/reports/summary", h.ReportsSummary)
	return r
}

func TestSubmitReport_Created(t *testing.T) {
	store := &fakeReportStore{}
	r := newReportRouter(store)

	body := `{"meeting_code":"2026.CC04","motion_id":2,"reason":"incorrect_information","note":"wrong vote"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, len(store.appended))
	assert.Equal(t, "2026.CC04", store.appended[0].MeetingCode)
	assert.Equal(t, 2, store.appended[0].MotionID)
	assert.Equal(t, model.ReportReasonIncorrect, store.appended[0].Reason)
}

func TestSubmitReport_InvalidReason(t *testing.T) {
	store := &fakeReportStore{}
	r := newReportRouter(store)

	body := `{"meeting_code":"2026.CC04","motion_id":2,"reason":"spam"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, len(store.appended))
}

func TestSubmitReport_MalformedBody(t *testing.T) {
	r := newReportRouter(&fakeReportStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", strings.NewReader("{oops"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitReport_StoreError(t *testing.T) {
	store := &fakeReportStore{err: errors.New("disk full")}
	r := newReportRouter(store)

	body := `{"meeting_code":"2026.CC04","motion_id":1,"reason":"other"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestReportsSummary_FiltersByMeetingCode(t *testing.T) {
	store := &fakeReportStore{
		summary: []model.MotionReportCount{
			{MeetingCode: "2026.CC04", MotionID: 1, IncorrectReports: 2},
		},
	}
	r := newReportRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/reports/summary?meeting_code=2026.CC04", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026.CC04", store.lastCode)

	var res ReportsSummaryResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, len(res.ByMotion))
	assert.Equal(t, 2, res.ByMotion[0].IncorrectReports)
}
