package task

import "time"

var t0 = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func fixedClock(now time.Time) Clock {
	return ClockFunc(func() time.Time { return now })
}

func fixedIDs(id ID) IDSource {
	return IDSourceFunc(func() ID { return id })
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newTestTask(tags ...string) Task {
	t := Generate(fixedClock(t0), fixedIDs("abcdefghkmnpqrst"))
	t.Tags = NewTags(tags...)
	return t
}
