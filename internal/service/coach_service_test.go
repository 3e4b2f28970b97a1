package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fixedGenerator returns a canned reply, recording the prompt it received.
type fixedGenerator struct {
	reply  string
	err    error
	prompt string
}

func (f *fixedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newCoachServiceForTest(t *testing.T, gen TextGenerator, messageRepo *fakeMessageRepo, userRepo *fakeUserRepo) CoachService {
	t.Helper()
	checkinRepo := &fakeCheckinRepo{}
	foodRepo := &fakeFoodRepo{}
	waterRepo := &fakeWaterRepo{}
	sessionRepo := &fakeSessionRepo{}
	weeklyRepo := &fakeWeeklyRepo{}

	weekly := NewWeeklyAggregator(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, messageRepo, nil)
	daily := NewDailyAggregator(userRepo, checkinRepo, foodRepo, waterRepo, sessionRepo, weeklyRepo, nil)

	client := NewGenerationClient(gen, RetryPolicy{MaxAttempts: 1, BaseDelay: 1, Sleep: func(time.Duration) {}}, true, nil)
	return NewCoachService(weekly, daily, client, nil, messageRepo, nil)
}

func TestGenerateWeeklyMessagePersistsResult(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	messageRepo := &fakeMessageRepo{}
	gen := &fixedGenerator{reply: "```json\n{\"subject\": \"Strong week\", \"body\": \"Well done.\"}\n```"}

	svc := newCoachServiceForTest(t, gen, messageRepo, userRepo)

	msg, err := svc.GenerateWeeklyMessage(context.Background(), userID, "2024-01-01")
	if err != nil {
		t.Fatalf("GenerateWeeklyMessage returned error: %v", err)
	}

	if msg.Subject != "Strong week" || msg.Body != "Well done." {
		t.Errorf("message = %+v, want parsed subject/body", msg)
	}
	if msg.CoachName != "Marcus" {
		t.Errorf("CoachName = %q, want Marcus", msg.CoachName)
	}
	if msg.WeekStart != "2024-01-01" {
		t.Errorf("WeekStart = %q, want 2024-01-01", msg.WeekStart)
	}
	if len(messageRepo.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(messageRepo.saved))
	}
	if gen.prompt == "" {
		t.Error("generator never received a prompt")
	}
}

func TestGenerateWeeklyMessageMalformedReplyStillSucceeds(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	messageRepo := &fakeMessageRepo{}
	gen := &fixedGenerator{reply: "Just plain text, no JSON anywhere, running well past the sixty character subject limit."}

	svc := newCoachServiceForTest(t, gen, messageRepo, userRepo)

	msg, err := svc.GenerateWeeklyMessage(context.Background(), userID, "2024-01-01")
	if err != nil {
		t.Fatalf("malformed model output must not fail the request: %v", err)
	}
	if msg.Subject != messageSubjectFallback {
		t.Errorf("Subject = %q, want fallback", msg.Subject)
	}
	if msg.Body != gen.reply {
		t.Errorf("Body = %q, want the raw reply", msg.Body)
	}
}

func TestGenerateWeeklyMessagePropagatesGenerationFailure(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	messageRepo := &fakeMessageRepo{}
	gen := &fixedGenerator{err: errors.New("rate limit")}

	svc := newCoachServiceForTest(t, gen, messageRepo, userRepo)

	_, err := svc.GenerateWeeklyMessage(context.Background(), userID, "2024-01-01")
	var rateLimited *RateLimitExceededError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("error = %T (%v), want *RateLimitExceededError", err, err)
	}
	if len(messageRepo.saved) != 0 {
		t.Errorf("saved %d messages, want none on failure", len(messageRepo.saved))
	}
}

func TestGenerateDailyMessage(t *testing.T) {
	userRepo, userID := newTestUser(testProfile())
	messageRepo := &fakeMessageRepo{}
	gen := &fixedGenerator{reply: "```\nKeep the streak going today.\n```"}

	svc := newCoachServiceForTest(t, gen, messageRepo, userRepo)

	msg, err := svc.GenerateDailyMessage(context.Background(), userID, "2024-01-03")
	if err != nil {
		t.Fatalf("GenerateDailyMessage returned error: %v", err)
	}
	if msg != "Keep the streak going today." {
		t.Errorf("message = %q, want fence-stripped text", msg)
	}
	// Daily messages are never persisted.
	if len(messageRepo.saved) != 0 {
		t.Errorf("saved %d messages, want none for daily path", len(messageRepo.saved))
	}
}
