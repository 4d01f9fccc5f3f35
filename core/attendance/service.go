package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

const Entity = "attendance record"

var errInvalidStudent = core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "this field is required"})

type (
	// Repository is the Entity Store for attendance records.
	// UpdateRecord and DeleteRecord fail with a *core.NotFoundError for unknown ids.
	Repository interface {
		QueryAllRecords(ctx context.Context) ([]Record, error)
		GetRecordByID(ctx context.Context, id int) (Record, error)
		CreateRecord(ctx context.Context, r Record) (Record, error)
		UpdateRecord(ctx context.Context, r Record) (Record, error)
		DeleteRecord(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}

	// Result is the outcome of one cell write.
	Result struct {
		Action core.Action
		Cell   Cell
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// QueryAll reloads every record from the store.
func (svc *Service) QueryAll(ctx context.Context) ([]Record, error) {
	records, err := svc.repo.QueryAllRecords(ctx)
	return records, core.NewStoreError("querying attendance", err)
}

// Mark sets the (studentID, day) cell to status, creating, updating or deleting the
// underlying record as needed. Writing StatusUnmarked deletes the record, if any.
// On a store failure the returned Result holds a Failed cell and the error.
func (svc *Service) Mark(ctx context.Context, studentID int, day time.Time, status Status) (Result, error) {
	if err := validate(studentID, status); err != nil {
		return Result{Cell: Failed{Err: err}}, err
	}
	records, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{Cell: Failed{Err: err}}, err
	}
	existing, found := Find(records, studentID, day)
	return svc.write(ctx, existing, found, studentID, day, status)
}

// Cycle advances the (studentID, day) cell to the next status of the click cycle.
func (svc *Service) Cycle(ctx context.Context, studentID int, day time.Time) (Result, error) {
	if err := validate(studentID, StatusUnmarked); err != nil {
		return Result{Cell: Failed{Err: err}}, err
	}
	records, err := svc.QueryAll(ctx)
	if err != nil {
		return Result{Cell: Failed{Err: err}}, err
	}
	existing, found := Find(records, studentID, day)
	next := StatusUnmarked.Next()
	if found {
		next = existing.Status.Next()
	}
	return svc.write(ctx, existing, found, studentID, day, next)
}

// MarkAllPresent marks every student of studentIDs present on day.
// Students are processed one at a time, in order; a failure is recorded and the
// remaining students are still processed. The returned error is only set when the
// records could not be loaded at all.
func (svc *Service) MarkAllPresent(ctx context.Context, studentIDs []int, day time.Time) (core.BatchResult, error) {
	var res core.BatchResult

	records, err := svc.QueryAll(ctx)
	if err != nil {
		return res, err
	}

	for _, id := range studentIDs {
		if err := validate(id, StatusPresent); err != nil {
			res.Fail(id, err)
			continue
		}
		existing, found := Find(records, id, day)
		out, err := svc.write(ctx, existing, found, id, day, StatusPresent)
		if err != nil {
			res.Fail(id, err)
			continue
		}
		res.Record(out.Action)
	}

	if !res.Succeeded() && svc.logger != nil {
		svc.logger.Warn("mark all present: partial failure", res.Err(), map[string]interface{}{
			"date":     day.Format(calendar.DayLayout),
			"failures": len(res.Failures),
		})
	}
	return res, nil
}

func validate(studentID int, status Status) error {
	if studentID <= 0 {
		return errInvalidStudent
	}
	if !status.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "invalid status"})
	}
	return nil
}

// write applies the reconciliation state machine to one cell. The local record is only
// replaced by what the store returns once the store call succeeded.
func (svc *Service) write(ctx context.Context, existing Record, found bool, studentID int, day time.Time, status Status) (Result, error) {
	action := core.Reconcile(found, status == StatusUnmarked, found && existing.Status != status)

	var (
		rec Record
		err error
	)
	switch action {
	case core.ActionNone:
		return Result{Action: action, Cell: CellOf(existing, found)}, nil
	case core.ActionCreate:
		rec, err = svc.repo.CreateRecord(ctx, Record{
			StudentID: studentID,
			Date:      calendar.Day(day),
			Status:    status,
		})
		err = errors.Wrap(core.NewStoreError("creating attendance", err), "marking attendance")
	case core.ActionUpdate:
		upd := existing
		upd.Status = status
		rec, err = svc.repo.UpdateRecord(ctx, upd)
		err = errors.Wrap(core.NewStoreError("updating attendance", err), "marking attendance")
	case core.ActionDelete:
		_, err = svc.repo.DeleteRecord(ctx, existing.ID)
		err = errors.Wrap(core.NewStoreError("deleting attendance", err), "marking attendance")
	}

	if err != nil {
		return Result{Action: action, Cell: Failed{Err: err}}, err
	}
	if action == core.ActionDelete {
		return Result{Action: action, Cell: Unmarked{}}, nil
	}
	return Result{Action: action, Cell: Marked{Record: rec}}, nil
}
