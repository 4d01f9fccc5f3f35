package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/tests"
)

func Test_gradeApi_submit(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)
	a := testutil.CreateAssignment(t, e.assignmentRepo, "Fractions", 100, testutil.Day(2024, time.March, 4))

	body := func(score string) []byte {
		return []byte(fmt.Sprintf(`{"student_id": %d, "assignment_id": %d, "score": %s}`, s.ID, a.ID, score))
	}
	pct := func(v int) *int { return &v }

	steps := []struct {
		name      string
		score     string
		wantCode  int
		wantResp  GradeCellResponse
		wantScore *float64
	}{
		{name: "empty cell stays empty", score: `""`, wantCode: http.StatusOK, wantResp: GradeCellResponse{Action: "none"}},
		{name: "first score creates", score: `87.5`, wantCode: http.StatusOK, wantResp: GradeCellResponse{Action: "create", Percentage: pct(88)}, wantScore: testutil.Score(87.5)},
		{name: "same score as text is a no-op", score: `"87.5"`, wantCode: http.StatusOK, wantResp: GradeCellResponse{Action: "none", Percentage: pct(88)}, wantScore: testutil.Score(87.5)},
		{name: "out of range", score: `105`, wantCode: http.StatusBadRequest},
		{name: "not a number", score: `"abc"`, wantCode: http.StatusBadRequest},
		{name: "new score updates", score: `92`, wantCode: http.StatusOK, wantResp: GradeCellResponse{Action: "update", Percentage: pct(92)}, wantScore: testutil.Score(92)},
		{name: "null deletes", score: `null`, wantCode: http.StatusOK, wantResp: GradeCellResponse{Action: "delete"}},
	}
	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			rec := e.do(http.MethodPut, "/v1/grades/cell", body(st.score))
			require.Equal(t, st.wantCode, rec.Code, rec.Body.String())
			if st.wantCode != http.StatusOK {
				return
			}

			var res GradeCellResponse
			decode(t, rec, &res)
			assert.Equal(t, st.wantResp.Action, res.Action)
			assert.Equal(t, st.wantResp.Percentage, res.Percentage)
			if st.wantScore == nil {
				assert.Nil(t, res.Grade)
				return
			}
			require.NotNil(t, res.Grade)
			assert.Equal(t, st.wantScore, res.Grade.Score)
		})
	}

	t.Run("out of range is reported on the score", func(t *testing.T) {
		rec := e.do(http.MethodPut, "/v1/grades/cell", body(`101`))
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"score": "score must be between 0 and 100"}`),
		}, rec)
	})

	t.Run("unknown assignment", func(t *testing.T) {
		rec := e.do(http.MethodPut, "/v1/grades/cell", []byte(fmt.Sprintf(`{"student_id": %d, "assignment_id": 99, "score": 10}`, s.ID)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_gradeApi_query(t *testing.T) {
	e := setup(t)
	s1 := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)
	s2 := testutil.CreateStudent(t, e.studentRepo, "Baraka", "Mushi", student.StatusActive)
	a := testutil.CreateAssignment(t, e.assignmentRepo, "Fractions", 20, testutil.Day(2024, time.March, 4))
	g1 := testutil.CreateGrade(t, e.gradeRepo, s1.ID, a.ID, testutil.Score(18))
	g2 := testutil.CreateGrade(t, e.gradeRepo, s2.ID, a.ID, testutil.Score(11))

	tests := []httpTest{
		{name: "all", path: "/v1/grades", wantCode: http.StatusOK, wantData: marshalList(t, g1, g2)},
		{name: "one student", path: fmt.Sprintf("/v1/grades?student_id=%d", s2.ID), wantCode: http.StatusOK, wantData: marshalList(t, g2)},
		{name: "nobody", path: "/v1/grades?student_id=42", wantCode: http.StatusOK, wantData: marshalList(t)},
		{name: "bad id", path: "/v1/grades?student_id=x", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(http.MethodGet, tt.path)
			checkCodeAndData(t, tt, rec)
		})
	}
}
