package service

import (
	"context"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.uber.org/zap"
)

// CoachService runs the coaching-message pipeline end to end:
// aggregate -> compose -> generate -> parse. The weekly variant persists its
// result so next week's run can hold the user to this week's commitments.
// Deduplication of concurrent runs for the same user/week is the caller's
// responsibility.
type CoachService interface {
	GenerateWeeklyMessage(ctx context.Context, userID, weekStart string) (*domain.CoachingMessage, error)
	GenerateDailyMessage(ctx context.Context, userID, date string) (string, error)
	GetMessages(ctx context.Context, userID string, limit int) ([]domain.CoachingMessage, error)
}

type coachService struct {
	weekly      WeeklyAggregator
	daily       DailyAggregator
	client      *GenerationClient
	dailyClient *GenerationClient
	messageRepo repository.CoachingMessageRepository
	logger      *zap.Logger
}

// NewCoachService creates a new instance of coachService. client drives the
// weekly path; dailyClient may carry a shorter backoff base and falls back
// to client when nil.
func NewCoachService(
	weekly WeeklyAggregator,
	daily DailyAggregator,
	client *GenerationClient,
	dailyClient *GenerationClient,
	messageRepo repository.CoachingMessageRepository,
	logger *zap.Logger,
) CoachService {
	if dailyClient == nil {
		dailyClient = client
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &coachService{
		weekly:      weekly,
		daily:       daily,
		client:      client,
		dailyClient: dailyClient,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// GenerateWeeklyMessage produces and persists the weekly coaching message
// for one user and one Monday-started week.
func (s *coachService) GenerateWeeklyMessage(ctx context.Context, userID, weekStart string) (*domain.CoachingMessage, error) {
	data, err := s.weekly.CollectWeeklyData(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	coach := data.Profile.Coach
	prompt := ComposeWeeklyPrompt(data, coach.Name, coach.Persona, coach.IntensityOverrides)

	raw, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	message := mapParsed(ParseWeeklyResponse(raw), userID, weekStart, coach.Name)

	if err := s.messageRepo.Save(ctx, message); err != nil {
		// The message was generated; losing the continuity record is worth a
		// log but not a failed request.
		s.logger.Error("failed to persist coaching message",
			zap.String("userId", userID),
			zap.String("weekStart", weekStart),
			zap.Error(err))
	}

	s.logger.Info("weekly coaching message generated",
		zap.String("userId", userID),
		zap.String("weekStart", weekStart),
		zap.String("subject", message.Subject))

	return message, nil
}

// GenerateDailyMessage produces the short mid-week nudge. Nothing is
// persisted: daily notes carry no continuity contract.
func (s *coachService) GenerateDailyMessage(ctx context.Context, userID, date string) (string, error) {
	data, err := s.daily.CollectDailyMessageData(ctx, userID, date)
	if err != nil {
		return "", err
	}

	coach := data.Profile.Coach
	prompt := ComposeDailyPrompt(data, coach.Name, coach.Persona, coach.IntensityOverrides)

	raw, err := s.dailyClient.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	return ParseDailyResponse(raw), nil
}

func (s *coachService) GetMessages(ctx context.Context, userID string, limit int) ([]domain.CoachingMessage, error) {
	return s.messageRepo.ListByUser(ctx, userID, limit)
}
