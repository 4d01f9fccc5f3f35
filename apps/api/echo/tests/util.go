package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/sheet"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/services/email"
	"github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database/dummy"
	"github.com/trezcool/darasa/tests"
)

type env struct {
	app            Server
	studentRepo    student.Repository
	assignmentRepo assignment.Repository
	gradeRepo      grade.Repository
	attendance     *testutil.AttendanceSpy
}

// setup serves the API on a fresh in-memory store.
func setup(t *testing.T) *env {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)

	e := &env{
		studentRepo:    dummydb.NewStudentRepository(db),
		assignmentRepo: dummydb.NewAssignmentRepository(db),
		gradeRepo:      dummydb.NewGradeRepository(db),
		attendance:     &testutil.AttendanceSpy{Repo: dummydb.NewAttendanceRepository(db)},
	}

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), core.Conf)
	studentSvc := student.NewService(e.studentRepo)
	assignmentSvc := assignment.NewService(e.assignmentRepo, grade.NewScores(e.gradeRepo))
	attendanceSvc := attendance.NewService(e.attendance, logger)
	gradeSvc := grade.NewService(e.gradeRepo, assignmentSvc)

	e.app = NewServer(&Options{
		AppName:        "Darasa",
		DisableReqLogs: true,
		DisableRecover: true,
		Logger:         logger,
		StudentSvc:     studentSvc,
		AssignmentSvc:  assignmentSvc,
		AttendanceSvc:  attendanceSvc,
		GradeSvc:       gradeSvc,
		Sheets:         sheet.NewBuilder(studentSvc, assignmentSvc, gradeSvc, attendanceSvc),

		Mailer:           emailsvc.NewConsoleServiceMock(core.Conf, logger),
		ReportRecipients: []string{"Head Teacher <head@example.com>"},
	})
	emailsvc.ResetSentMessages()
	return e
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (e *env) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	e.app.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func marshalList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	if objs == nil {
		objs = []interface{}{}
	}
	return marshalObj(t, objs)
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %s; wantData %s", rec.Body.String(), tt.wantData)
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
