package ad

import (
	"strings"
	"testing"

	"forotrix/models"
)

func rawRange(from, to string) map[string]interface{} {
	return map[string]interface{}{"from": from, "to": to}
}

func TestSanitizeAvailabilityRanges(t *testing.T) {
	t.Run("drops malformed entries", func(t *testing.T) {
		got := sanitizeAvailabilityRanges([]interface{}{
			rawRange("10:00", "12:00"),
			rawRange("25:00", "26:00"),
			rawRange("10:60", "11:00"),
			rawRange("bad", "14:00"),
			"not a map",
			rawRange("15:00", "15:00"),
			rawRange("18:00", "16:00"),
		})
		if len(got) != 1 || got[0].From != "10:00" || got[0].To != "12:00" {
			t.Fatalf("got %+v, want single 10:00-12:00 range", got)
		}
	})

	t.Run("sorts by start time", func(t *testing.T) {
		got := sanitizeAvailabilityRanges([]interface{}{
			rawRange("16:00", "18:00"),
			rawRange("09:00", "11:00"),
		})
		if len(got) != 2 || got[0].From != "09:00" || got[1].From != "16:00" {
			t.Fatalf("got %+v, want sorted ranges", got)
		}
	})

	t.Run("drops overlapping entries keeping the earlier one", func(t *testing.T) {
		got := sanitizeAvailabilityRanges([]interface{}{
			rawRange("10:00", "14:00"),
			rawRange("13:00", "15:00"),
			rawRange("16:00", "18:00"),
		})
		if len(got) != 2 {
			t.Fatalf("got %d ranges, want 2: %+v", len(got), got)
		}
		if got[0].To != "14:00" || got[1].From != "16:00" {
			t.Fatalf("got %+v, want 10:00-14:00 and 16:00-18:00", got)
		}
	})

	t.Run("adjacent ranges are kept", func(t *testing.T) {
		got := sanitizeAvailabilityRanges([]interface{}{
			rawRange("10:00", "12:00"),
			rawRange("12:00", "14:00"),
		})
		if len(got) != 2 {
			t.Fatalf("got %+v, want both adjacent ranges", got)
		}
	})

	t.Run("caps at five ranges", func(t *testing.T) {
		got := sanitizeAvailabilityRanges([]interface{}{
			rawRange("06:00", "07:00"),
			rawRange("08:00", "09:00"),
			rawRange("10:00", "11:00"),
			rawRange("12:00", "13:00"),
			rawRange("14:00", "15:00"),
			rawRange("16:00", "17:00"),
		})
		if len(got) != 5 {
			t.Fatalf("got %d ranges, want 5", len(got))
		}
		if got[4].From != "14:00" {
			t.Fatalf("got %+v, want earliest five kept", got)
		}
	})

	t.Run("non-slice input yields nil", func(t *testing.T) {
		if got := sanitizeAvailabilityRanges("nope"); got != nil {
			t.Fatalf("got %+v, want nil", got)
		}
	})
}

func TestValidateAvailabilitySlot(t *testing.T) {
	valid := models.AvailabilitySlot{
		Day:    models.Monday,
		Status: models.AvailabilityCustom,
		Ranges: []models.AvailabilityRange{{From: "10:00", To: "14:00"}},
	}
	if err := ValidateAvailabilitySlot(valid); err != nil {
		t.Fatalf("valid slot rejected: %v", err)
	}

	cases := []struct {
		name    string
		slot    models.AvailabilitySlot
		wantErr string
	}{
		{
			name:    "unknown day",
			slot:    models.AvailabilitySlot{Day: "someday", Status: models.AvailabilityAllDay},
			wantErr: "invalid availability day",
		},
		{
			name:    "unknown status",
			slot:    models.AvailabilitySlot{Day: models.Monday, Status: "busy"},
			wantErr: "invalid availability status",
		},
		{
			name:    "custom without hours",
			slot:    models.AvailabilitySlot{Day: models.Monday, Status: models.AvailabilityCustom},
			wantErr: "custom availability requires",
		},
		{
			name: "malformed time",
			slot: models.AvailabilitySlot{
				Day:    models.Monday,
				Status: models.AvailabilityCustom,
				Ranges: []models.AvailabilityRange{{From: "9am", To: "14:00"}},
			},
			wantErr: "must be HH:MM",
		},
		{
			name: "hour past the 24h clock",
			slot: models.AvailabilitySlot{
				Day:    models.Monday,
				Status: models.AvailabilityCustom,
				Ranges: []models.AvailabilityRange{{From: "24:00", To: "25:00"}},
			},
			wantErr: "must be HH:MM",
		},
		{
			name: "inverted range",
			slot: models.AvailabilitySlot{
				Day:    models.Monday,
				Status: models.AvailabilityCustom,
				Ranges: []models.AvailabilityRange{{From: "18:00", To: "10:00"}},
			},
			wantErr: "invalid range 18:00-10:00",
		},
		{
			name: "overlapping ranges",
			slot: models.AvailabilitySlot{
				Day:    models.Monday,
				Status: models.AvailabilityCustom,
				Ranges: []models.AvailabilityRange{
					{From: "10:00", To: "14:00"},
					{From: "13:00", To: "16:00"},
				},
			},
			wantErr: "cannot overlap",
		},
		{
			name: "too many ranges",
			slot: models.AvailabilitySlot{
				Day:    models.Monday,
				Status: models.AvailabilityCustom,
				Ranges: []models.AvailabilityRange{
					{From: "06:00", To: "07:00"}, {From: "08:00", To: "09:00"},
					{From: "10:00", To: "11:00"}, {From: "12:00", To: "13:00"},
					{From: "14:00", To: "15:00"}, {From: "16:00", To: "17:00"},
				},
			},
			wantErr: "at most 5 ranges",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAvailabilitySlot(tc.slot)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.wantErr)
			}
		})
	}

	t.Run("legacy from/to accepted for custom", func(t *testing.T) {
		slot := models.AvailabilitySlot{
			Day:    models.Friday,
			Status: models.AvailabilityCustom,
			From:   "09:00",
			To:     "17:00",
		}
		if err := ValidateAvailabilitySlot(slot); err != nil {
			t.Fatalf("legacy slot rejected: %v", err)
		}
	})

	t.Run("unavailable needs no hours", func(t *testing.T) {
		slot := models.AvailabilitySlot{Day: models.Sunday, Status: models.AvailabilityUnavailable}
		if err := ValidateAvailabilitySlot(slot); err != nil {
			t.Fatalf("unavailable slot rejected: %v", err)
		}
	})

	t.Run("day and status are case insensitive", func(t *testing.T) {
		slot := models.AvailabilitySlot{Day: " Monday ", Status: "ALL_DAY"}
		if err := ValidateAvailabilitySlot(slot); err != nil {
			t.Fatalf("case-insensitive slot rejected: %v", err)
		}
	})
}

func TestValidateAvailability(t *testing.T) {
	slots := make([]models.AvailabilitySlot, 8)
	for i := range slots {
		slots[i] = models.AvailabilitySlot{Day: models.Monday, Status: models.AvailabilityAllDay}
	}
	if err := ValidateAvailability(slots); err == nil {
		t.Fatal("expected error for more than 7 slots")
	}
	if err := ValidateAvailability(slots[:7]); err != nil {
		t.Fatalf("7 slots rejected: %v", err)
	}
}
