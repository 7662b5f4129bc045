package domain

import "time"

// dayKeyLayout is the single serialization used for day keys everywhere:
// storage, querying and comparison. Records created and queried with
// different formats can never join, so there is exactly one format.
const dayKeyLayout = "2006-01-02"

// DayKey identifies a calendar day ("2025-08-24"). It is the join key
// between availability records and grid columns.
type DayKey string

func DayKeyOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return "", err
	}
	return DayKeyOf(t), nil
}

func (d DayKey) Time() (time.Time, error) {
	return time.Parse(dayKeyLayout, string(d))
}

func (d DayKey) String() string {
	return string(d)
}
