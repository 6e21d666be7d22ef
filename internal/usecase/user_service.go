package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"example.com/userapi/internal/domain"
	"example.com/userapi/internal/repository"
	"example.com/userapi/internal/storage"
	"example.com/userapi/internal/validation"
)

type PageInfo struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
}

type UserPage struct {
	TotalUsers int           `json:"total_users"`
	Users      []domain.User `json:"users"`
	PageInfo   PageInfo      `json:"page_info"`
}

type UserService struct {
	repo      repository.UserRepository
	validator *validation.Validator
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{
		repo:      repo,
		validator: validation.New(),
	}
}

// List returns every record as a single page.
func (s *UserService) List(ctx context.Context) (UserPage, error) {
	items, err := s.repo.ListUsers(ctx)
	if err != nil {
		return UserPage{}, fmt.Errorf("list users: %w", err)
	}
	if items == nil {
		items = []domain.User{}
	}
	return UserPage{
		TotalUsers: len(items),
		Users:      items,
		PageInfo:   PageInfo{CurrentPage: 1, TotalPages: 1},
	}, nil
}

func (s *UserService) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	in = in.Normalize()
	if errs := s.validator.Struct(in); !errs.Empty() {
		return domain.User{}, &ValidationError{Fields: errs}
	}
	return s.store(ctx, in)
}

// CreateFromPayload accepts a decoded JSON object or tool arguments, so type
// errors and rule errors are reported together.
func (s *UserService) CreateFromPayload(ctx context.Context, payload map[string]any) (domain.User, error) {
	in, errs := s.validator.NewUser(payload)
	if !errs.Empty() {
		return domain.User{}, &ValidationError{Fields: errs}
	}
	return s.store(ctx, in)
}

func (s *UserService) store(ctx context.Context, in domain.NewUser) (domain.User, error) {
	u, err := s.repo.CreateUser(ctx, in)
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Get re-validates the stored record; one that no longer fits the schema is
// reported as not found.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, &NotFoundError{ID: id}
		}
		return domain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	if errs := s.validator.Struct(u); !errs.Empty() {
		return domain.User{}, &NotFoundError{ID: id}
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) (domain.User, error) {
	u, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, &NotFoundError{ID: id}
		}
		return domain.User{}, fmt.Errorf("delete user %d: %w", id, err)
	}
	return u, nil
}

// ParseUserID fails with *BadRequestError before any lookup is attempted.
func ParseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &BadRequestError{Value: raw}
	}
	return id, nil
}
