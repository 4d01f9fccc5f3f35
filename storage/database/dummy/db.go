package dummydb

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
)

// ErrDuplicateKey mirrors the unique indexes of the SQL schema.
var ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

type (
	// DB is an in-memory Entity Store. Every table assigns its own increasing ids.
	DB struct {
		student    *table[student.Student]
		assignment *table[assignment.Assignment]
		grade      *table[grade.Grade]
		attendance *table[attendance.Record]
	}

	table[T any] struct {
		sync.RWMutex
		pkCount int
		rows    map[int]T
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:    newTable[student.Student](),
		assignment: newTable[assignment.Assignment](),
		grade:      newTable[grade.Grade](),
		attendance: newTable[attendance.Record](),
	}
	return db, nil
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int]T)}
}

// all returns the rows ordered by id. The caller holds the lock.
func (t *table[T]) all() []T {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, t.rows[id])
	}
	return rows
}

func (t *table[T]) nextID() int {
	t.pkCount++
	return t.pkCount
}

// findOther returns the id of a row other than id matching same. The caller holds the lock.
func (t *table[T]) findOther(id int, same func(T) bool) (int, bool) {
	for rid, row := range t.rows {
		if rid != id && same(row) {
			return rid, true
		}
	}
	return 0, false
}
