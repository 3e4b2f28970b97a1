package service

import (
	"context"
	"errors"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrInvalidGoal       = errors.New("invalid goal type")
	ErrInvalidExperience = errors.New("invalid experience level")
	ErrInvalidIntensity  = errors.New("invalid coach intensity")
)

// ProfileService reads and updates the coaching profile embedded on a user:
// goal targets, experience level, intensity, and the assigned coach identity.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, profile domain.Profile) error
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(ctx, objID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user.Profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, profile domain.Profile) error {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	err = s.userRepo.UpdateProfile(ctx, objID, profile)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func validateProfile(p domain.Profile) error {
	switch p.Goal {
	case domain.GoalLoseWeight, domain.GoalGainWeight, domain.GoalGainStrength, domain.GoalMaintain:
	default:
		return ErrInvalidGoal
	}
	switch p.Experience {
	case domain.ExperienceNovice, domain.ExperienceBeginner, domain.ExperienceIntermediate, domain.ExperienceAdvanced:
	default:
		return ErrInvalidExperience
	}
	switch p.Intensity {
	case domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh, domain.IntensityExtreme:
	default:
		return ErrInvalidIntensity
	}
	for level := range p.Coach.IntensityOverrides {
		switch level {
		case domain.IntensityLow, domain.IntensityMedium, domain.IntensityHigh, domain.IntensityExtreme:
		default:
			return ErrInvalidIntensity
		}
	}
	return nil
}
