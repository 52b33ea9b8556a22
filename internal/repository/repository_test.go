package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"servicehub/internal/database"
	"servicehub/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectMemory(t.Name())
	require.NoError(t, err)
	return db
}

func TestUserRepository_CreateWithProvider(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &domain.User{Email: " Mixed@Example.COM ", PasswordHash: "x", FirstName: "M", Role: domain.RoleProvider}
	require.NoError(t, repo.Create(ctx, u, &domain.Provider{BusinessName: "Mixed", IsAvailable: true}))
	assert.Equal(t, "mixed@example.com", u.Email)
	require.NotNil(t, u.Provider)
	assert.Equal(t, u.ID, u.Provider.UserID)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Provider)
	assert.Equal(t, "Mixed", got.Provider.BusinessName)

	exists, err := repo.ExistsByEmail(ctx, "MIXED@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByID(ctx, u.ID+100)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Create(ctx, &domain.User{Email: "mixed@example.com", PasswordHash: "x", Role: domain.RoleCustomer}, nil)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProviderRepository_GetByUserID(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	providers := NewProviderRepository(db)
	ctx := context.Background()

	customer := &domain.User{Email: "c@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	require.NoError(t, users.Create(ctx, customer, nil))

	p, err := providers.GetByUserID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBookingRepository(t *testing.T) {
	db := setupDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	mk := func(id, at string, providerID int64, status domain.BookingStatus) *domain.Booking {
		b := &domain.Booking{
			BookingID:     id,
			CustomerID:    1,
			ServiceID:     1,
			ProviderID:    providerID,
			ScheduledDate: "2024-06-01",
			ScheduledTime: at,
			Duration:      60,
			Status:        status,
		}
		require.NoError(t, repo.Create(ctx, b))
		return b
	}
	mk("a", "12:00", 1, domain.BookingConfirmed)
	pending := mk("b", "09:00", 1, domain.BookingPending)
	mk("c", "10:00", 1, domain.BookingCancelled)
	mk("d", "10:00", 2, domain.BookingConfirmed)

	busy, err := repo.ListForProviderOnDate(ctx, 1, "2024-06-01", domain.ActiveBookingStatuses)
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.Equal(t, "09:00", busy[0].ScheduledTime)
	assert.Equal(t, "12:00", busy[1].ScheduledTime)

	busy, err = repo.ListForProviderOnDate(ctx, 1, "2024-06-01", domain.BusyBookingStatuses)
	require.NoError(t, err)
	assert.Len(t, busy, 1)

	assert.ErrorIs(t, repo.Create(ctx, &domain.Booking{BookingID: "a", ScheduledDate: "2024-06-02", ScheduledTime: "09:00", Status: domain.BookingPending}), ErrDuplicate)

	reason := "no show"
	require.NoError(t, repo.UpdateStatus(ctx, pending.ID, domain.BookingCancelled, &reason))
	got, err := repo.GetByBookingID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "no show", *got.CancellationReason)

	require.NoError(t, repo.UpdateStatus(ctx, pending.ID, domain.BookingConfirmed, nil))
	got, err = repo.GetByBookingID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got.CancellationReason)

	providerID := int64(2)
	list, total, err := repo.List(ctx, BookingListFilter{CustomerID: 99, ProviderID: &providerID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	list, total, err = repo.List(ctx, BookingListFilter{CustomerID: 1, Status: domain.BookingConfirmed, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 1)
}

func TestMessageRepository_MarkReadOnlyForReceiver(t *testing.T) {
	db := setupDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	m1 := &domain.Message{SenderID: 1, ReceiverID: 2, Content: "hi", Type: domain.MessageText}
	m2 := &domain.Message{SenderID: 2, ReceiverID: 1, Content: "hello", Type: domain.MessageText}
	require.NoError(t, repo.Create(ctx, m1))
	require.NoError(t, repo.Create(ctx, m2))

	n, err := repo.MarkRead(ctx, 2, []int64{m1.ID, m2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.MarkRead(ctx, 2, []int64{m1.ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.MarkRead(ctx, 2, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
