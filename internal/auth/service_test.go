package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*Service, *MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)

	return NewService(repo, testSecret, time.Hour), repo
}

func TestService_RequestLink(t *testing.T) {
	userID := uuid.New()

	type args struct {
		email string
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{email: "  Dev@Example.COM "},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpsertUser(gomock.Any(), "dev@example.com").
					Return(&User{ID: userID, Email: "dev@example.com"}, nil)
				m.EXPECT().
					CreateVerificationToken(gomock.Any(), userID, gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "EmptyEmail",
			args:    args{email: "   "},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "MissingAtSign",
			args:    args{email: "not-an-email"},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "RepositoryError",
			args: args{email: "dev@example.com"},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					UpsertUser(gomock.Any(), "dev@example.com").
					Return(nil, errors.New("db down"))
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			token, err := svc.RequestLink(context.Background(), tt.args.email)

			if tt.wantErr != nil {
				assert.ErrorContains(t, err, tt.wantErr.Error())
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestService_RequestLink_StoresHashedToken(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	var storedHash string
	var storedExpiry time.Time

	repo.EXPECT().
		UpsertUser(gomock.Any(), "dev@example.com").
		Return(&User{ID: userID}, nil)
	repo.EXPECT().
		CreateVerificationToken(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string, expiresAt time.Time) error {
			storedHash = hash
			storedExpiry = expiresAt
			return nil
		})

	token, err := svc.RequestLink(context.Background(), "dev@example.com")
	require.NoError(t, err)

	// The raw token never reaches storage.
	assert.NotEqual(t, token, storedHash)
	assert.Equal(t, hashToken(token), storedHash)
	assert.WithinDuration(t, time.Now().Add(linkTTL), storedExpiry, time.Minute)
}

func TestService_Verify(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	token := "some-raw-token"

	repo.EXPECT().
		ConsumeVerificationToken(gomock.Any(), hashToken(token)).
		Return(userID, nil)

	session, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)

	parsed, err := svc.ParseSession(session)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestService_Verify_InvalidToken(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().
		ConsumeVerificationToken(gomock.Any(), gomock.Any()).
		Return(uuid.Nil, ErrInvalidToken)

	_, err := svc.Verify(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ParseSession(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ParseSession("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewService(nil, "other-secret", time.Hour)

		session, err := other.issueJWT(uuid.New())
		require.NoError(t, err)

		_, err = svc.ParseSession(session)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewService(nil, testSecret, time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		session, err := expired.issueJWT(uuid.New())
		require.NoError(t, err)

		_, err = svc.ParseSession(session)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_Me(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()

	repo.EXPECT().
		GetUser(gomock.Any(), userID).
		Return(&User{ID: userID, Email: "dev@example.com", FirstName: "Dev"}, nil)

	user, err := svc.Me(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Dev", user.FirstName)
}
