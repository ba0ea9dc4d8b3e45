package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pawcare/internal/domain"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == "" {
		b.ID = "booking-1" // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatusIf(ctx context.Context, id string, from, to domain.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ClaimSitter(ctx context.Context, id, sitterID string) (bool, error) {
	args := m.Called(ctx, id, sitterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ApproveUnclaimed(ctx context.Context, id, sitterID string) (bool, error) {
	args := m.Called(ctx, id, sitterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBySitter(ctx context.Context, sitterID string) ([]domain.Booking, error) {
	args := m.Called(ctx, sitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListOpenPostings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockSitterDirectory struct {
	mock.Mock
}

func (m *MockSitterDirectory) GetByUserID(ctx context.Context, userID string) (*domain.Sitter, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sitter), args.Error(1)
}

func (m *MockSitterDirectory) GetRate(ctx context.Context, sitterID string) (float64, error) {
	args := m.Called(ctx, sitterID)
	return args.Get(0).(float64), args.Error(1)
}

type MockPetStore struct {
	mock.Mock
}

func (m *MockPetStore) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pet), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingApproved(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func newTestService() (*Service, *MockBookingRepository, *MockSitterDirectory, *MockPetStore, *MockNotificationSender) {
	bookings := new(MockBookingRepository)
	sitters := new(MockSitterDirectory)
	pets := new(MockPetStore)
	notifs := new(MockNotificationSender)
	return NewService(bookings, sitters, pets, notifs), bookings, sitters, pets, notifs
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	svc, bookings, sitters, pets, notifs := newTestService()

	start := time.Now().Add(48 * time.Hour)
	pets.On("GetByID", mock.Anything, "pet-1").Return(&domain.Pet{ID: "pet-1", OwnerID: "owner-1"}, nil)
	sitters.On("GetRate", mock.Anything, "sitter-1").Return(25.0, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Create(context.Background(), "owner-1", CreateBookingRequest{
		PetID:         "pet-1",
		SitterID:      strPtr("sitter-1"),
		StartTime:     start,
		DurationHours: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, 50.0, b.TotalCost)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Len(t, b.WalkCode, 6)
	notifs.AssertCalled(t, "NotifyBookingCreated", mock.Anything, mock.Anything)
}

func TestCreate_RateCapturedAtCreation(t *testing.T) {
	svc, bookings, sitters, pets, notifs := newTestService()

	pets.On("GetByID", mock.Anything, "pet-1").Return(&domain.Pet{ID: "pet-1", OwnerID: "owner-1"}, nil)
	sitters.On("GetRate", mock.Anything, "sitter-1").Return(30.0, nil)
	notifs.On("NotifyBookingCreated", mock.Anything, mock.Anything).Return(nil)

	var created *domain.Booking
	bookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Booking)
	}).Return(nil)

	_, err := svc.Create(context.Background(), "owner-1", CreateBookingRequest{
		PetID:         "pet-1",
		SitterID:      strPtr("sitter-1"),
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 90.0, created.TotalCost)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc, _, _, pets, _ := newTestService()
	pets.On("GetByID", mock.Anything, "pet-1").Return(&domain.Pet{ID: "pet-1", OwnerID: "owner-1"}, nil)

	cases := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"zero duration", CreateBookingRequest{PetID: "pet-1", StartTime: time.Now().Add(time.Hour), DurationHours: 0}},
		{"negative duration", CreateBookingRequest{PetID: "pet-1", StartTime: time.Now().Add(time.Hour), DurationHours: -1}},
		{"past start", CreateBookingRequest{PetID: "pet-1", StartTime: time.Now().Add(-time.Hour), DurationHours: 1}},
		{"open posting without rate", CreateBookingRequest{PetID: "pet-1", StartTime: time.Now().Add(time.Hour), DurationHours: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", tc.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCreate_PetOwnedByAnotherUser(t *testing.T) {
	svc, _, _, pets, _ := newTestService()
	pets.On("GetByID", mock.Anything, "pet-1").Return(&domain.Pet{ID: "pet-1", OwnerID: "someone-else"}, nil)

	_, err := svc.Create(context.Background(), "owner-1", CreateBookingRequest{
		PetID:         "pet-1",
		SitterID:      strPtr("sitter-1"),
		StartTime:     time.Now().Add(time.Hour),
		DurationHours: 1,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprove_AssignedSitter(t *testing.T) {
	svc, bookings, sitters, _, notifs := newTestService()

	pending := &domain.Booking{ID: "b1", OwnerID: "owner-1", SitterID: strPtr("sitter-1"), Status: domain.BookingPending}
	upcoming := &domain.Booking{ID: "b1", OwnerID: "owner-1", SitterID: strPtr("sitter-1"), Status: domain.BookingUpcoming}

	bookings.On("GetByID", mock.Anything, "b1").Return(pending, nil).Once()
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingPending, domain.BookingUpcoming).Return(true, nil)
	bookings.On("GetByID", mock.Anything, "b1").Return(upcoming, nil).Once()
	notifs.On("NotifyBookingApproved", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Approve(context.Background(), "b1", "user-s1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingUpcoming, b.Status)
	bookings.AssertExpectations(t)
}

func TestApprove_WrongSitter(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, "b1").Return(
		&domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingPending}, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s2").Return(&domain.Sitter{ID: "sitter-2", UserID: "user-s2"}, nil)

	_, err := svc.Approve(context.Background(), "b1", "user-s2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprove_OpenPostingClaimsAndApproves(t *testing.T) {
	svc, bookings, sitters, _, notifs := newTestService()

	open := &domain.Booking{ID: "b1", OwnerID: "owner-1", Status: domain.BookingPending}
	approved := &domain.Booking{ID: "b1", OwnerID: "owner-1", SitterID: strPtr("sitter-1"), Status: domain.BookingUpcoming}

	bookings.On("GetByID", mock.Anything, "b1").Return(open, nil).Once()
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("ApproveUnclaimed", mock.Anything, "b1", "sitter-1").Return(true, nil)
	bookings.On("GetByID", mock.Anything, "b1").Return(approved, nil).Once()
	notifs.On("NotifyBookingApproved", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Approve(context.Background(), "b1", "user-s1")

	require.NoError(t, err)
	assert.Equal(t, "sitter-1", *b.SitterID)
	assert.Equal(t, domain.BookingUpcoming, b.Status)
}

func TestApprove_AlreadyCancelled(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, "b1").Return(
		&domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingCancelled}, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingPending, domain.BookingUpcoming).Return(false, nil)

	_, err := svc.Approve(context.Background(), "b1", "user-s1")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestClaim_LoserGetsConflict(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	open := &domain.Booking{ID: "b1", Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, "b1").Return(open, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s2").Return(&domain.Sitter{ID: "sitter-2", UserID: "user-s2"}, nil)
	// Another sitter already won the row.
	bookings.On("ClaimSitter", mock.Anything, "b1", "sitter-2").Return(false, nil)

	_, err := svc.Claim(context.Background(), "b1", "user-s2")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestBeginWalk_WrongCodeLeavesStatusUntouched(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	upcoming := &domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingUpcoming, WalkCode: "123456"}
	bookings.On("GetByID", mock.Anything, "b1").Return(upcoming, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)

	_, err := svc.BeginWalk(context.Background(), "b1", "user-s1", "654321")

	assert.ErrorIs(t, err, ErrInvalidCode)
	bookings.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBeginWalk_CorrectCode(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	upcoming := &domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingUpcoming, WalkCode: "123456"}
	active := &domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingActive, WalkCode: "123456"}

	bookings.On("GetByID", mock.Anything, "b1").Return(upcoming, nil).Once()
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingUpcoming, domain.BookingActive).Return(true, nil)
	bookings.On("GetByID", mock.Anything, "b1").Return(active, nil).Once()

	b, err := svc.BeginWalk(context.Background(), "b1", "user-s1", "123456")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingActive, b.Status)
}

func TestBeginWalk_NotUpcoming(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, "b1").Return(
		&domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingPending, WalkCode: "123456"}, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)

	// Correct code, wrong state: state is checked first.
	_, err := svc.BeginWalk(context.Background(), "b1", "user-s1", "123456")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestEndWalk_CompletesActiveWalk(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	active := &domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingActive}
	completed := &domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingCompleted}

	bookings.On("GetByID", mock.Anything, "b1").Return(active, nil).Once()
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingActive, domain.BookingCompleted).Return(true, nil)
	bookings.On("GetByID", mock.Anything, "b1").Return(completed, nil).Once()

	b, err := svc.EndWalk(context.Background(), "b1", "user-s1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)
}

func TestDecline_AfterCompletionFails(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, "b1").Return(
		&domain.Booking{ID: "b1", SitterID: strPtr("sitter-1"), Status: domain.BookingCompleted}, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingPending, domain.BookingCancelled).Return(false, nil)

	_, err := svc.Decline(context.Background(), "b1", "user-s1")
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancel_OnlyOwner(t *testing.T) {
	svc, bookings, _, _, _ := newTestService()

	bookings.On("GetByID", mock.Anything, "b1").Return(
		&domain.Booking{ID: "b1", OwnerID: "owner-1", Status: domain.BookingPending}, nil)

	_, err := svc.Cancel(context.Background(), "b1", "intruder")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_NotifySwallowsSenderErrors(t *testing.T) {
	svc, bookings, _, _, notifs := newTestService()

	pending := &domain.Booking{ID: "b1", OwnerID: "owner-1", Status: domain.BookingPending}
	cancelled := &domain.Booking{ID: "b1", OwnerID: "owner-1", Status: domain.BookingCancelled}

	bookings.On("GetByID", mock.Anything, "b1").Return(pending, nil).Once()
	bookings.On("UpdateStatusIf", mock.Anything, "b1", domain.BookingPending, domain.BookingCancelled).Return(true, nil)
	bookings.On("GetByID", mock.Anything, "b1").Return(cancelled, nil).Once()
	notifs.On("NotifyBookingCancelled", mock.Anything, mock.Anything).Return(assert.AnError)

	b, err := svc.Cancel(context.Background(), "b1", "owner-1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestGetByID_Visibility(t *testing.T) {
	svc, bookings, sitters, _, _ := newTestService()

	b := &domain.Booking{ID: "b1", OwnerID: "owner-1", SitterID: strPtr("sitter-1")}
	bookings.On("GetByID", mock.Anything, "b1").Return(b, nil)
	sitters.On("GetByUserID", mock.Anything, "user-s1").Return(&domain.Sitter{ID: "sitter-1", UserID: "user-s1"}, nil)
	sitters.On("GetByUserID", mock.Anything, "stranger").Return(nil, nil)

	got, err := svc.GetByID(context.Background(), "b1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)

	got, err = svc.GetByID(context.Background(), "b1", "user-s1")
	require.NoError(t, err)
	assert.Equal(t, "b1", got.ID)

	_, err = svc.GetByID(context.Background(), "b1", "stranger")
	assert.ErrorIs(t, err, ErrForbidden)
}
