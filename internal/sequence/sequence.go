// Package sequence mints day-scoped, human-readable record identifiers
// of the form [PREFIX-]YYYYMMDD-[MARKER]NNN: mail serials like
// "20260127-001" and registration case numbers like "RO-20260127-R001".
//
// Codes for a day are strictly increasing from 1. The counter is derived
// from the stored codes themselves (no process-wide cache), so multiple
// server instances stay consistent. Allocation must run inside the same
// transaction that inserts the owning row; on Postgres the day's rows
// are locked FOR UPDATE, which serializes concurrent allocations for the
// same day. The unique index on the code column remains the backstop: a
// duplicate insert surfaces as ErrCodeCollision and callers may retry.
package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCodeCollision is returned when an allocated code lost the race to
// another insert. The allocation can be retried.
var ErrCodeCollision = errors.New("sequence: code already allocated")

// Series identifies one family of codes sharing a counter per day.
type Series struct {
	// Prefix goes in front of the date, including its separator
	// ("RO-"), or empty for bare date codes.
	Prefix string
	// Marker goes between the dash and the counter ("R"), or empty.
	Marker string
	// Table and Column locate the stored codes this series draws from.
	Table  string
	Column string
}

// MailSerials is the incoming-mail serial series (20260127-001).
var MailSerials = Series{Table: "incoming_mail", Column: "serial_number"}

// RegistrationCases is the case-number series (RO-20260127-R001).
var RegistrationCases = Series{Prefix: "RO-", Marker: "R", Table: "registration_case", Column: "case_number"}

// DayPrefix is the fixed part of every code for a given day, e.g.
// "RO-20260127-R". Codes sort lexicographically within a day because the
// date is fixed-width and the counter is zero-padded.
func (s Series) DayPrefix(date time.Time) string {
	return s.Prefix + date.Format("20060102") + "-" + s.Marker
}

// Format renders the code for a counter value. Three digits, zero
// padded; values past 999 grow a fourth digit (no documented cap in the
// back office this replaces).
func (s Series) Format(date time.Time, n int) string {
	return fmt.Sprintf("%s%03d", s.DayPrefix(date), n)
}

// Next computes the next code for the series on the given date. tx must
// be the transaction that will insert the owning row.
func Next(tx *gorm.DB, s Series, date time.Time) (string, error) {
	dayPrefix := s.DayPrefix(date)

	q := tx.Table(s.Table).
		Where(s.Column+" LIKE ?", dayPrefix+"%").
		Order(s.Column + " DESC").
		Limit(1)
	// sqlite (tests) has no FOR UPDATE; its writes are serialized anyway
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var codes []string
	if err := q.Pluck(s.Column, &codes).Error; err != nil {
		return "", err
	}

	n := 1
	if len(codes) > 0 {
		last := codes[0]
		suffix := strings.TrimPrefix(last, dayPrefix)
		prev, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("sequence: malformed code %q for day prefix %q: %w", last, dayPrefix, err)
		}
		n = prev + 1
	}
	return s.Format(date, n), nil
}

// AsCollision maps a unique-index violation on the code column to
// ErrCodeCollision; other errors pass through unchanged.
func AsCollision(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrCodeCollision
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return ErrCodeCollision
	}
	return err
}
