package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentStatus type for the enrollment lifecycle
type EnrollmentStatus string

const (
	StatusActive   EnrollmentStatus = "ACTIVE"
	StatusExpiring EnrollmentStatus = "EXPIRING" // Within the trailing window before expiry
	StatusExpired  EnrollmentStatus = "EXPIRED"
)

// ExpiringWindowDays is the trailing number of days before the end date
// during which an enrollment is reported as EXPIRING.
const ExpiringWindowDays = 7

// ProgressCadenceDays is the interval at which clients may record a
// progress snapshot: day 0, every 15th day after that, and the plan's
// final day.
const ProgressCadenceDays = 15

const day = 24 * time.Hour

// Enrollment links a user to a plan instance. Status and DaysRemaining
// are cached copies of derived state; they drift between writes, so
// every read path must recompute them with StatusAt/DaysRemaining
// instead of trusting the stored columns.
type Enrollment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	PlanID        primitive.ObjectID `bson:"planId" json:"planId"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	EndDate       time.Time          `bson:"endDate" json:"endDate"`
	Status        EnrollmentStatus   `bson:"status" json:"status"`
	DaysRemaining int                `bson:"daysRemaining" json:"daysRemaining"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EndDateFor computes the end date when an enrollment is first created:
// startDate plus the plan's full duration.
func EndDateFor(startDate time.Time, durationDays int) time.Time {
	return startDate.AddDate(0, 0, durationDays)
}

// ReassignedEndDate computes the end date after a plan change:
// startDate plus the new plan's duration minus one day. The start date
// is never moved by a reassignment.
func ReassignedEndDate(startDate time.Time, durationDays int) time.Time {
	return startDate.AddDate(0, 0, durationDays-1)
}

// DaysRemaining returns ceil((endDate - now) / 1 day). Negative once
// the end date has passed.
func DaysRemaining(endDate, now time.Time) int {
	diff := endDate.Sub(now)
	d := diff / day
	if diff%day > 0 {
		d++
	}
	return int(d)
}

// StatusAt derives the enrollment status from the end date and the
// current time. The final day (zero days remaining) counts as EXPIRING.
func StatusAt(endDate, now time.Time) EnrollmentStatus {
	remaining := DaysRemaining(endDate, now)
	switch {
	case remaining < 0:
		return StatusExpired
	case remaining <= ExpiringWindowDays:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// DaysSinceStart returns floor((now - startDate) / 1 day). Negative for
// enrollments that have not started yet.
func DaysSinceStart(startDate, now time.Time) int {
	diff := now.Sub(startDate)
	d := diff / day
	if diff%day < 0 {
		d--
	}
	return int(d)
}

// CanRecordProgress reports whether a progress snapshot may be recorded
// on the given day of the plan: day 0, every 15th day, or any day from
// the plan's final day onward.
func CanRecordProgress(daysSinceStart, durationDays int) bool {
	if daysSinceStart < 0 {
		return false
	}
	return daysSinceStart == 0 ||
		daysSinceStart%ProgressCadenceDays == 0 ||
		daysSinceStart >= durationDays-1
}

// NextReviewDay returns the next day number on which progress may be
// recorded, for a submission attempted on daysSinceStart.
func NextReviewDay(daysSinceStart int) int {
	return (daysSinceStart + ProgressCadenceDays) / ProgressCadenceDays * ProgressCadenceDays
}

// Refresh recomputes the cached Status and DaysRemaining fields from
// the stored end date.
func (e *Enrollment) Refresh(now time.Time) {
	e.DaysRemaining = DaysRemaining(e.EndDate, now)
	e.Status = StatusAt(e.EndDate, now)
}

// IsCurrent reports whether the enrollment still grants access, i.e. it
// has not expired as of now.
func (e *Enrollment) IsCurrent(now time.Time) bool {
	return StatusAt(e.EndDate, now) != StatusExpired
}
