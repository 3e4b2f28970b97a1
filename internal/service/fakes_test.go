package service

import (
	"context"
	"errors"

	"fitsage/coach-app/internal/domain"
	"fitsage/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for aggregator tests. Per-date fakes key their
// data by date and can be told to fail a specific date with a transport error.

var errTransport = errors.New("connection reset")

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	user.ID = id
	if f.users == nil {
		f.users = map[primitive.ObjectID]*domain.User{}
	}
	// Store a copy so callers mutating the returned user cannot corrupt the
	// "persisted" record.
	stored := *user
	f.users[id] = &stored
	return id, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, profile domain.Profile) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Profile = profile
	return nil
}

type fakeCheckinRepo struct {
	byDate map[string]*domain.DailyCheckin
	failOn map[string]bool
}

func (f *fakeCheckinRepo) Upsert(ctx context.Context, checkin *domain.DailyCheckin) error {
	if f.byDate == nil {
		f.byDate = map[string]*domain.DailyCheckin{}
	}
	f.byDate[checkin.Date] = checkin
	return nil
}

func (f *fakeCheckinRepo) GetByDate(ctx context.Context, userID, date string) (*domain.DailyCheckin, error) {
	if f.failOn[date] {
		return nil, errTransport
	}
	if c, ok := f.byDate[date]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

type fakeFoodRepo struct {
	byDate map[string]*domain.FoodDiaryDay
	failOn map[string]bool
}

func (f *fakeFoodRepo) Upsert(ctx context.Context, day *domain.FoodDiaryDay) error {
	if f.byDate == nil {
		f.byDate = map[string]*domain.FoodDiaryDay{}
	}
	f.byDate[day.Date] = day
	return nil
}

func (f *fakeFoodRepo) GetByDate(ctx context.Context, userID, date string) (*domain.FoodDiaryDay, error) {
	if f.failOn[date] {
		return nil, errTransport
	}
	if d, ok := f.byDate[date]; ok {
		return d, nil
	}
	return nil, repository.ErrNotFound
}

type fakeWaterRepo struct {
	byDate map[string]*domain.WaterLog
}

func (f *fakeWaterRepo) Upsert(ctx context.Context, log *domain.WaterLog) error {
	if f.byDate == nil {
		f.byDate = map[string]*domain.WaterLog{}
	}
	f.byDate[log.Date] = log
	return nil
}

func (f *fakeWaterRepo) GetByDate(ctx context.Context, userID, date string) (*domain.WaterLog, error) {
	if w, ok := f.byDate[date]; ok {
		return w, nil
	}
	return nil, repository.ErrNotFound
}

type fakeSessionRepo struct {
	sessions []domain.SessionLog
	err      error
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *domain.SessionLog) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	session.ID = id
	f.sessions = append(f.sessions, *session)
	return id, nil
}

func (f *fakeSessionRepo) GetByDate(ctx context.Context, userID, date string) ([]domain.SessionLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SessionLog
	for _, s := range f.sessions {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetByDateRange(ctx context.Context, userID, from, to string) ([]domain.SessionLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SessionLog
	for _, s := range f.sessions {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeWeeklyRepo struct {
	byWeek map[string]*domain.WeeklyCheckin
}

func (f *fakeWeeklyRepo) Upsert(ctx context.Context, checkin *domain.WeeklyCheckin) error {
	if f.byWeek == nil {
		f.byWeek = map[string]*domain.WeeklyCheckin{}
	}
	f.byWeek[checkin.WeekStart] = checkin
	return nil
}

func (f *fakeWeeklyRepo) GetByWeek(ctx context.Context, userID, weekStart string) (*domain.WeeklyCheckin, error) {
	if w, ok := f.byWeek[weekStart]; ok {
		return w, nil
	}
	return nil, repository.ErrNotFound
}

type fakeMessageRepo struct {
	byWeek map[string]*domain.CoachingMessage
	saved  []*domain.CoachingMessage
}

func (f *fakeMessageRepo) Save(ctx context.Context, message *domain.CoachingMessage) error {
	if f.byWeek == nil {
		f.byWeek = map[string]*domain.CoachingMessage{}
	}
	f.byWeek[message.WeekStart] = message
	f.saved = append(f.saved, message)
	return nil
}

func (f *fakeMessageRepo) GetByWeek(ctx context.Context, userID, weekStart string) (*domain.CoachingMessage, error) {
	if m, ok := f.byWeek[weekStart]; ok {
		return m, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMessageRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.CoachingMessage, error) {
	var out []domain.CoachingMessage
	for _, m := range f.byWeek {
		out = append(out, *m)
	}
	return out, nil
}

// newTestUser seeds a fakeUserRepo with one user and returns the repo and the
// user's hex id.
func newTestUser(profile domain.Profile) (*fakeUserRepo, string) {
	id := primitive.NewObjectID()
	repo := &fakeUserRepo{users: map[primitive.ObjectID]*domain.User{
		id: {ID: id, Name: "Test User", Email: "test@example.com", Role: domain.RoleMember, Profile: profile},
	}}
	return repo, id.Hex()
}
