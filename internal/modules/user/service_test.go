package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo { return &fakeRepo{users: make(map[string]*User)} }

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, exists := r.users[u.Email]; exists {
		return ErrDuplicate
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func validRequest() CreateUserRequest {
	return CreateUserRequest{
		Email:     "ana@ropita.local",
		Password:  "secret-password",
		FirstName: "Ana",
		LastName:  "Flores",
		Role:      RoleStaff,
	}
}

func TestCreateUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.Equal(t, RoleStaff, u.Role)
	assert.NotEqual(t, "secret-password", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, validRequest())
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateUserValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateUserRequest)
	}{
		{"bad email", func(r *CreateUserRequest) { r.Email = "nope" }},
		{"short password", func(r *CreateUserRequest) { r.Password = "short" }},
		{"missing first name", func(r *CreateUserRequest) { r.FirstName = "" }},
		{"unknown role", func(r *CreateUserRequest) { r.Role = "root" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleStaff}).IsAdmin())
}
