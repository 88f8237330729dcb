package core

import (
	"testing"
	"time"
)

func TestMonthKeyLabel(t *testing.T) {
	cases := []struct {
		key  MonthKey
		want string
	}{
		{MonthKey{2024, time.January}, "Januari 2024"},
		{MonthKey{2024, time.February}, "Februari 2024"},
		{MonthKey{2023, time.May}, "Mei 2023"},
		{MonthKey{2023, time.August}, "Agustus 2023"},
		{MonthKey{2022, time.December}, "Desember 2022"},
	}
	for _, tc := range cases {
		if got := tc.key.Label(); got != tc.want {
			t.Errorf("%v label = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestParseMonthKey(t *testing.T) {
	k, err := ParseMonthKey("2024-02")
	if err != nil || k != (MonthKey{2024, time.February}) {
		t.Fatalf("unexpected key %v err=%v", k, err)
	}
	if k.String() != "2024-02" {
		t.Fatalf("round trip: %q", k.String())
	}
	for _, bad := range []string{"", "2024", "2024-13", "2024-00", "24-01", "2024-1", "abcd-01"} {
		if _, err := ParseMonthKey(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}

func TestMonthKeyBefore(t *testing.T) {
	jan := MonthKey{2024, time.January}
	feb := MonthKey{2024, time.February}
	dec := MonthKey{2023, time.December}
	if !jan.Before(feb) || feb.Before(jan) {
		t.Fatalf("jan/feb ordering wrong")
	}
	if !dec.Before(jan) {
		t.Fatalf("year boundary ordering wrong")
	}
	if jan.Before(jan) {
		t.Fatalf("month is not before itself")
	}
}

func TestMonthOfUsesOwnLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	// 31 Jan 20:00 UTC is already 1 Feb in Jakarta.
	ts := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC).In(wib)
	if got := MonthOf(ts); got != (MonthKey{2024, time.February}) {
		t.Fatalf("got %v", got)
	}
}
