package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/repository"
	"example.com/userapi/internal/storage"
	"example.com/userapi/internal/storage/memory"
)

func newSeededService() (*UserService, *memory.Store) {
	repo := memory.New(domain.SeedUsers()...)
	return NewUserService(repo), repo
}

func amy() domain.NewUser {
	return domain.NewUser{Name: "Amy Lee", Email: "amy@example.com", Age: 22}
}

func TestUserService_Scenario(t *testing.T) {
	svc, _ := newSeededService()
	ctx := context.Background()

	created, err := svc.Create(ctx, amy())
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)

	page, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalUsers)

	removed, err := svc.Delete(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.SeedUsers()[1], removed)

	_, err = svc.Get(ctx, 2)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(2), nf.ID)

	page, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalUsers)
}

func TestUserService_CreateIDIsMaxPlusOne(t *testing.T) {
	svc, _ := newSeededService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		before, err := svc.List(ctx)
		require.NoError(t, err)
		var maxID int64
		for _, u := range before.Users {
			maxID = max(maxID, u.ID)
		}

		created, err := svc.Create(ctx, amy())
		require.NoError(t, err)
		assert.Equal(t, maxID+1, created.ID)

		after, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, before.TotalUsers+1, after.TotalUsers)
	}
}

func TestUserService_CreateRejectsDigitsOnlyName(t *testing.T) {
	svc, repo := newSeededService()

	in := amy()
	in.Name = "12345"
	_, err := svc.Create(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Equal(t, 3, repo.Len(), "failed create must not touch the store")
}

func TestUserService_CreateAgeBoundaries(t *testing.T) {
	svc, _ := newSeededService()
	ctx := context.Background()

	for _, age := range []int{0, 121} {
		in := amy()
		in.Age = age
		_, err := svc.Create(ctx, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "age %d", age)
		assert.Contains(t, verr.Fields, "age")
	}
	for _, age := range []int{1, 120} {
		in := amy()
		in.Age = age
		u, err := svc.Create(ctx, in)
		require.NoError(t, err, "age %d", age)
		assert.Equal(t, age, u.Age)
	}
}

func TestUserService_CreateTrimsInput(t *testing.T) {
	svc, _ := newSeededService()

	u, err := svc.Create(context.Background(), domain.NewUser{
		Name:  "  Amy Lee  ",
		Email: " amy@example.com",
		Age:   22,
		City:  " Medan ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Amy Lee", u.Name)
	assert.Equal(t, "amy@example.com", u.Email)
	assert.Equal(t, "Medan", u.City)
}

func TestUserService_CreateFromPayloadReportsAllFields(t *testing.T) {
	svc, repo := newSeededService()

	_, err := svc.CreateFromPayload(context.Background(), map[string]any{
		"name":  "999",
		"email": "nope",
		"age":   "old",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"age", "email", "name"}, verr.Fields.Fields())
	assert.Equal(t, 3, repo.Len())
}

func TestUserService_CreateFromPayload(t *testing.T) {
	svc, _ := newSeededService()

	u, err := svc.CreateFromPayload(context.Background(), map[string]any{
		"name":  "Amy Lee",
		"email": "amy@example.com",
		"age":   float64(22),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 4, Name: "Amy Lee", Email: "amy@example.com", Age: 22}, u)
}

func TestUserService_GetPresentAndAbsent(t *testing.T) {
	svc, _ := newSeededService()
	ctx := context.Background()

	u, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)

	_, err = svc.Get(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.EqualError(t, err, "user with ID 42 not found")
}

func TestUserService_GetHidesRecordFailingSchema(t *testing.T) {
	repo := memory.New(domain.User{ID: 7, Name: "1234", Email: "x@example.com", Age: 30})
	svc := NewUserService(repo)

	_, err := svc.Get(context.Background(), 7)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(7), nf.ID)
}

func TestUserService_DeleteTwice(t *testing.T) {
	svc, repo := newSeededService()
	ctx := context.Background()

	_, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())

	_, err = svc.Delete(ctx, 1)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.Equal(t, 2, repo.Len())
}

type failingRepo struct {
	repository.UserRepository
}

func (failingRepo) ListUsers(context.Context) ([]domain.User, error) {
	return nil, errors.New("boom")
}

func TestUserService_ListWrapsStoreError(t *testing.T) {
	svc := NewUserService(&failingRepo{})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
}

func TestUserService_ListEmptyStore(t *testing.T) {
	svc := NewUserService(memory.New())

	page, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalUsers)
	assert.NotNil(t, page.Users)
	assert.Equal(t, PageInfo{CurrentPage: 1, TotalPages: 1}, page.PageInfo)
}

func TestParseUserID(t *testing.T) {
	id, err := ParseUserID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"abc", "1.5", ""} {
		_, err := ParseUserID(raw)
		var br *BadRequestError
		require.ErrorAs(t, err, &br, raw)
		assert.Equal(t, raw, br.Value)
		assert.False(t, errors.Is(err, storage.ErrNotFound))
	}
}

func TestInfoService(t *testing.T) {
	svc := NewInfoService("User API", "1.1.0", "demo")
	fixed := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	g := svc.Hello()
	assert.Equal(t, "success", g.Status)
	assert.Equal(t, fixed, g.Timestamp)

	info := svc.Info(7)
	assert.Equal(t, domain.APIInfo{APIName: "User API", Version: "1.1.0", Description: "demo", TotalEndpoints: 7}, info)

	echo := svc.Echo(map[string]any{"a": 1})
	assert.True(t, echo.Success)
	assert.Equal(t, `Data received: {"a":1}`, echo.Message)
}
