package timescale

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestFloorCeil(t *testing.T) {
	for _, tc := range []struct {
		name      string
		iv        Interval
		in        time.Time
		wantFloor time.Time
		wantCeil  time.Time
	}{
		{"Year", Every(Year, 1), date(2024, 5, 3, 10, 0), date(2024, 1, 1, 0, 0), date(2025, 1, 1, 0, 0)},
		{"YearAligned", Every(Year, 1), date(2024, 1, 1, 0, 0), date(2024, 1, 1, 0, 0), date(2024, 1, 1, 0, 0)},
		{"FiveYears", Every(Year, 5), date(2023, 7, 1, 0, 0), date(2020, 1, 1, 0, 0), date(2025, 1, 1, 0, 0)},
		{"Month", Every(Month, 1), date(2024, 2, 10, 0, 0), date(2024, 2, 1, 0, 0), date(2024, 3, 1, 0, 0)},
		{"Quarter", Every(Month, 3), date(2024, 5, 10, 0, 0), date(2024, 4, 1, 0, 0), date(2024, 7, 1, 0, 0)},
		{"Week", Every(Week, 1), date(2024, 1, 10, 5, 0), date(2024, 1, 7, 0, 0), date(2024, 1, 14, 0, 0)},
		{"TwoDays", Every(Day, 2), date(2024, 2, 4, 12, 0), date(2024, 2, 3, 0, 0), date(2024, 2, 5, 0, 0)},
		{"Day", Every(Day, 1), date(2024, 2, 4, 12, 0), date(2024, 2, 4, 0, 0), date(2024, 2, 5, 0, 0)},
		{"ThreeHours", Every(Hour, 3), date(2024, 2, 4, 7, 30), date(2024, 2, 4, 6, 0), date(2024, 2, 4, 9, 0)},
		{"Hour", Every(Hour, 1), date(2024, 2, 4, 11, 30), date(2024, 2, 4, 11, 0), date(2024, 2, 4, 12, 0)},
		{"FifteenMinutes", Every(Minute, 15), date(2024, 2, 4, 11, 20), date(2024, 2, 4, 11, 15), date(2024, 2, 4, 11, 30)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.iv.Floor(tc.in); !got.Equal(tc.wantFloor) {
				t.Errorf("Floor(%v) = %v, want %v", tc.in, got, tc.wantFloor)
			}
			if got := tc.iv.Ceil(tc.in); !got.Equal(tc.wantCeil) {
				t.Errorf("Ceil(%v) = %v, want %v", tc.in, got, tc.wantCeil)
			}
		})
	}
}

func TestTicksInclusive(t *testing.T) {
	ticks := Ticks(date(2024, 1, 1, 0, 0), date(2024, 4, 1, 0, 0), Every(Month, 1))
	if len(ticks) != 4 {
		t.Fatalf("len(ticks) = %d, want 4: %v", len(ticks), ticks)
	}
	if !ticks[3].Equal(date(2024, 4, 1, 0, 0)) {
		t.Errorf("last tick = %v, want 2024-04-01", ticks[3])
	}

	mid := Ticks(date(2024, 1, 15, 0, 0), date(2024, 3, 15, 0, 0), Every(Month, 1))
	if len(mid) != 2 || !mid[0].Equal(date(2024, 2, 1, 0, 0)) {
		t.Errorf("unaligned ticks = %v", mid)
	}

	if got := Ticks(date(2024, 1, 15, 0, 0), date(2024, 1, 20, 0, 0), Every(Month, 1)); len(got) != 0 {
		t.Errorf("expected no ticks, got %v", got)
	}
}

func TestTicksFallBack(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata: %v", err)
	}
	start := time.Date(2024, 11, 3, 0, 30, 0, 0, ny)
	stop := start.Add(7 * time.Hour)
	ticks := Ticks(Every(Hour, 1).Floor(start), Every(Hour, 1).Ceil(stop), Every(Hour, 1))
	if len(ticks) != 9 {
		t.Fatalf("len(ticks) = %d, want 9: %v", len(ticks), ticks)
	}
	for i := 1; i < len(ticks); i++ {
		if d := ticks[i].Sub(ticks[i-1]); d != time.Hour {
			t.Errorf("tick %d is %v after the previous one", i, d)
		}
	}
	if ticks[1].Hour() != 1 || ticks[2].Hour() != 1 {
		t.Errorf("repeated 01:00 missing: %v", ticks[:3])
	}

	third := Every(Hour, 3)
	if got := third.Floor(time.Date(2024, 11, 3, 4, 10, 0, 0, ny)); got.Hour() != 3 || got.Minute() != 0 {
		t.Errorf("Floor over fall-back = %v, want 03:00", got)
	}
}

func TestTickInterval(t *testing.T) {
	for _, tc := range []struct {
		name  string
		start time.Time
		stop  time.Time
		want  Interval
	}{
		{"FiveYears", date(2019, 3, 1, 0, 0), date(2024, 8, 1, 0, 0), Every(Year, 1)},
		{"FiveMonths", date(2023, 10, 15, 0, 0), date(2024, 3, 20, 0, 0), Every(Month, 1)},
		{"FiveWeeks", date(2024, 1, 1, 0, 0), date(2024, 2, 5, 0, 0), Every(Day, 2)},
		{"NineHours", date(2024, 3, 10, 2, 0), date(2024, 3, 10, 11, 30), Every(Hour, 1)},
		{"TwoHours", date(2024, 3, 10, 2, 0), date(2024, 3, 10, 4, 0), Every(Minute, 15)},
		{"Century", date(1900, 1, 1, 0, 0), date(2000, 1, 1, 0, 0), Every(Year, 10)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := TickInterval(tc.start, tc.stop, 10); got != tc.want {
				t.Errorf("TickInterval = %+v, want %+v", got, tc.want)
			}
		})
	}

	if got := TickInterval(date(2024, 1, 1, 0, 0), date(2024, 1, 1, 0, 0), 10); got.Unit != Millisecond || got.Step != 1 {
		t.Errorf("zero span interval = %+v, want 1ms", got)
	}
}

func TestNiceAuto(t *testing.T) {
	s, e := NiceAuto(date(2024, 1, 1, 0, 0), date(2024, 2, 5, 0, 0))
	if !s.Equal(date(2024, 1, 1, 0, 0)) || !e.Equal(date(2024, 2, 5, 0, 0)) {
		t.Errorf("NiceAuto = %v, %v", s, e)
	}
	s, e = NiceAuto(date(2019, 3, 1, 0, 0), date(2024, 8, 1, 0, 0))
	if !s.Equal(date(2019, 1, 1, 0, 0)) || !e.Equal(date(2025, 1, 1, 0, 0)) {
		t.Errorf("NiceAuto = %v, %v", s, e)
	}
}

func TestScale(t *testing.T) {
	s := NewScale(date(2024, 1, 1, 0, 0), date(2024, 1, 11, 0, 0))
	s.SetRange(0, 100)
	if got := s.Map(date(2024, 1, 6, 0, 0)); got != 50 {
		t.Errorf("Map(mid) = %v, want 50", got)
	}
	if got := s.Map(date(2024, 1, 1, 0, 0)); got != 0 {
		t.Errorf("Map(start) = %v, want 0", got)
	}
	if got := s.Map(date(2024, 1, 16, 0, 0)); got != 150 {
		t.Errorf("Map(past end) = %v, want 150", got)
	}

	flat := NewScale(date(2024, 1, 1, 0, 0), date(2024, 1, 1, 0, 0))
	flat.SetRange(0, 40)
	if got := flat.Map(date(2030, 1, 1, 0, 0)); got != 20 {
		t.Errorf("degenerate Map = %v, want 20", got)
	}
}
