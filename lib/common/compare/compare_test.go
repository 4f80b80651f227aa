package compare

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestCombine(t *testing.T) {
	type booking struct {
		date   time.Time
		id     int64
		amount decimal.Decimal
	}
	day := func(d int) time.Time {
		return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	bookings := []booking{
		{day(2), 7, decimal.RequireFromString("3")},
		{day(1), 9, decimal.RequireFromString("2")},
		{day(2), 4, decimal.RequireFromString("1")},
	}

	Sort(bookings, Combine(
		func(b1, b2 booking) Order { return Time(b1.date, b2.date) },
		func(b1, b2 booking) Order { return Ordered(b1.id, b2.id) },
	))

	want := []int64{9, 4, 7}
	var got []int64
	for _, b := range bookings {
		got = append(got, b.id)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestDesc(t *testing.T) {
	values := []decimal.Decimal{
		decimal.RequireFromString("1.5"),
		decimal.RequireFromString("100"),
		decimal.RequireFromString("-3"),
	}

	Sort(values, Desc(Decimal))

	want := []string{"100", "1.5", "-3"}
	var got []string
	for _, v := range values {
		got = append(got, v.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}
