package book

import (
	"fmt"
	"time"

	"github.com/smileynet/addressbook/internal/contact"
)

// LeapDayPolicy decides the observed date of a 29 February birthday in a
// year without 29 February.
type LeapDayPolicy string

const (
	LeapDayFeb28  LeapDayPolicy = "feb28"
	LeapDayMarch1 LeapDayPolicy = "mar1"
)

// ParseLeapDayPolicy converts a config value into a LeapDayPolicy.
func ParseLeapDayPolicy(s string) (LeapDayPolicy, error) {
	switch p := LeapDayPolicy(s); p {
	case LeapDayFeb28, LeapDayMarch1:
		return p, nil
	default:
		return "", fmt.Errorf("book: unknown leap day policy %q (want %q or %q)", s, LeapDayFeb28, LeapDayMarch1)
	}
}

// Congratulation is one entry of UpcomingBirthdays: who to congratulate and
// on which date. Date is never a Saturday or Sunday.
type Congratulation struct {
	Name contact.Name
	Date time.Time
}

// DateString renders Date as DD.MM.YYYY.
func (c Congratulation) DateString() string {
	return c.Date.Format(contact.BirthdayLayout)
}

// UpcomingBirthdays lists records whose next birthday falls within
// [today, today+window] days, in iteration order. Weekend birthdays are moved
// to the following Monday. Only the calendar date of today is used.
func (b *Book) UpcomingBirthdays(today time.Time) []Congratulation {
	start := dateOf(today)
	end := start.AddDate(0, 0, b.window)

	var out []Congratulation
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		next := b.occurrence(bd, start.Year())
		if next.Before(start) {
			next = b.occurrence(bd, start.Year()+1)
		}
		if next.After(end) {
			continue
		}
		out = append(out, Congratulation{Name: r.Name(), Date: shiftWeekend(next)})
	}
	return out
}

// occurrence returns the birthday's month and day in year, applying the leap
// day policy when year has no 29 February.
func (b *Book) occurrence(bd contact.Birthday, year int) time.Time {
	month, day := bd.Month(), bd.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		if b.leapDays == LeapDayMarch1 {
			month, day = time.March, 1
		} else {
			day = 28
		}
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// shiftWeekend moves Saturday and Sunday to the next Monday.
func shiftWeekend(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
