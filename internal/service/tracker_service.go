package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"
	"fitsage/coach-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidContentType = errors.New("invalid or missing image content type")
	ErrPhotoURLError      = errors.New("failed to generate photo URL")
	ErrNoPhotoAttached    = errors.New("no progress photo attached to this check-in")
)

// TrackerService covers the thin record-submission surface feeding the
// aggregators: daily check-ins, food diary rollups, water logs, session
// logs, and weekly check-ins with optional progress photos.
type TrackerService interface {
	SubmitDailyCheckin(ctx context.Context, checkin *domain.DailyCheckin) error
	SubmitFoodDiaryDay(ctx context.Context, day *domain.FoodDiaryDay) error
	SubmitWaterLog(ctx context.Context, log *domain.WaterLog) error
	LogSession(ctx context.Context, session *domain.SessionLog) (primitive.ObjectID, error)
	SubmitWeeklyCheckin(ctx context.Context, checkin *domain.WeeklyCheckin) error

	// Progress photo flow: request a presigned upload URL, upload directly,
	// then submit the weekly check-in carrying the returned object key.
	RequestPhotoUploadURL(ctx context.Context, userID, weekStart, contentType string) (uploadURL, objectKey string, err error)
	GetPhotoDownloadURL(ctx context.Context, userID, weekStart string) (string, error)
}

type trackerService struct {
	checkinRepo repository.DailyCheckinRepository
	foodRepo    repository.FoodDiaryRepository
	waterRepo   repository.WaterLogRepository
	sessionRepo repository.SessionLogRepository
	weeklyRepo  repository.WeeklyCheckinRepository
	photoStore  storage.FileStorage
}

// NewTrackerService creates a new instance of trackerService.
func NewTrackerService(
	checkinRepo repository.DailyCheckinRepository,
	foodRepo repository.FoodDiaryRepository,
	waterRepo repository.WaterLogRepository,
	sessionRepo repository.SessionLogRepository,
	weeklyRepo repository.WeeklyCheckinRepository,
	photoStore storage.FileStorage,
) TrackerService {
	return &trackerService{
		checkinRepo: checkinRepo,
		foodRepo:    foodRepo,
		waterRepo:   waterRepo,
		sessionRepo: sessionRepo,
		weeklyRepo:  weeklyRepo,
		photoStore:  photoStore,
	}
}

func (s *trackerService) SubmitDailyCheckin(ctx context.Context, checkin *domain.DailyCheckin) error {
	if err := validateDate(checkin.Date); err != nil {
		return err
	}
	return s.checkinRepo.Upsert(ctx, checkin)
}

func (s *trackerService) SubmitFoodDiaryDay(ctx context.Context, day *domain.FoodDiaryDay) error {
	if err := validateDate(day.Date); err != nil {
		return err
	}
	return s.foodRepo.Upsert(ctx, day)
}

func (s *trackerService) SubmitWaterLog(ctx context.Context, log *domain.WaterLog) error {
	if err := validateDate(log.Date); err != nil {
		return err
	}
	return s.waterRepo.Upsert(ctx, log)
}

func (s *trackerService) LogSession(ctx context.Context, session *domain.SessionLog) (primitive.ObjectID, error) {
	if err := validateDate(session.Date); err != nil {
		return primitive.NilObjectID, err
	}
	return s.sessionRepo.Create(ctx, session)
}

func (s *trackerService) SubmitWeeklyCheckin(ctx context.Context, checkin *domain.WeeklyCheckin) error {
	if err := validateDate(checkin.WeekStart); err != nil {
		return err
	}
	if !domain.IsMonday(checkin.WeekStart) {
		return ErrNotMonday
	}
	return s.weeklyRepo.Upsert(ctx, checkin)
}

// RequestPhotoUploadURL generates a presigned PUT URL for a weekly progress
// photo. The object key is returned so the client can report it back on the
// weekly check-in submission.
func (s *trackerService) RequestPhotoUploadURL(ctx context.Context, userID, weekStart, contentType string) (string, string, error) {
	if err := validateDate(weekStart); err != nil {
		return "", "", err
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", "", ErrInvalidContentType
	}

	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("progress-photos", userID, weekStart, fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension))

	uploadURL, err := s.photoStore.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", ErrPhotoURLError
	}
	return uploadURL, objectKey, nil
}

// GetPhotoDownloadURL returns a temporary view URL for the photo attached to
// a weekly check-in.
func (s *trackerService) GetPhotoDownloadURL(ctx context.Context, userID, weekStart string) (string, error) {
	checkin, err := s.weeklyRepo.GetByWeek(ctx, userID, weekStart)
	if err != nil {
		return "", err
	}
	if checkin.PhotoObjectKey == "" {
		return "", ErrNoPhotoAttached
	}

	downloadURL, err := s.photoStore.GeneratePresignedDownloadURL(ctx, checkin.PhotoObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoURLError
	}
	return downloadURL, nil
}

func validateDate(date string) error {
	if _, err := domain.ParseDate(date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
