package quota

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConsumeAndRemaining(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	day := DayKey(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))

	remaining, err := svc.Remaining(ctx, "user-1", day, 5)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 5 {
		t.Errorf("Remaining = %d, want 5", remaining)
	}

	if _, err := svc.Consume(ctx, "user-1", day, 3, 5); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	remaining, _ = svc.Remaining(ctx, "user-1", day, 5)
	if remaining != 2 {
		t.Errorf("Remaining after consume = %d, want 2", remaining)
	}

	if _, err := svc.Consume(ctx, "user-1", day, 3, 5); !errors.Is(err, ErrLimitReached) {
		t.Errorf("overspend err = %v, want ErrLimitReached", err)
	}
}

func TestBudgetIsPerDayAndPerUser(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	day1 := DayKey(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	day2 := DayKey(time.Date(2026, 3, 2, 0, 0, 1, 0, time.UTC))

	if _, err := svc.Consume(ctx, "user-1", day1, 5, 5); err != nil {
		t.Fatalf("Consume day1: %v", err)
	}
	if _, err := svc.Consume(ctx, "user-1", day2, 5, 5); err != nil {
		t.Errorf("new day should have a fresh budget: %v", err)
	}
	if _, err := svc.Consume(ctx, "user-2", day1, 5, 5); err != nil {
		t.Errorf("other user should have their own budget: %v", err)
	}
}

func TestDayKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	// 02:00 on March 2nd in UTC+7 is still March 1st in UTC.
	local := time.Date(2026, 3, 2, 2, 0, 0, 0, loc)
	if got := DayKey(local); got != "2026-03-01" {
		t.Errorf("DayKey = %s, want 2026-03-01", got)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	svc := NewService()
	ctx := context.Background()
	day := "2026-03-01"

	if _, err := svc.Consume(ctx, "user-1", day, 10, 10); err != nil {
		t.Fatalf("Consume: %v", err)
	}
	// Limit lowered after consumption.
	remaining, err := svc.Remaining(ctx, "user-1", day, 3)
	if err != nil {
		t.Fatalf("Remaining: %v", err)
	}
	if remaining != 0 {
		t.Errorf("Remaining = %d, want 0", remaining)
	}
}
