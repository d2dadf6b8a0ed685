package contact

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/textnorm"
)

// Notifier is told about every stored message. Implementations must not block the caller.
type Notifier interface {
	NotifyContact(m Message)
}

// Interests reports which service interests the contact form offers.
type Interests interface {
	IsServiceInterest(code string) bool
}

type CreateRequest struct {
	Name            string
	Email           string
	Phone           *string
	ServiceInterest string
	Message         string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Message, error)
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context, filter Filter) ([]*Message, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Message, error)
}

type service struct {
	store     *lifecycle.Store[Message, Status]
	interests Interests
	notifier  Notifier
}

var validate = validator.New()

// NewService builds the contact service. interests and notifier may be nil.
func NewService(repo Repository, interests Interests, notifier Notifier, opts ...lifecycle.Option) Service {
	return &service{
		store:     lifecycle.NewStore(Schema, repo, opts...),
		interests: interests,
		notifier:  notifier,
	}
}

func (s *service) check(req *CreateRequest) error {
	req.Name = textnorm.Clean(req.Name)
	req.Email = textnorm.Email(req.Email)
	req.ServiceInterest = textnorm.Clean(req.ServiceInterest)
	req.Message = textnorm.CleanMultiline(req.Message)
	req.Phone = textnorm.CleanPtr(req.Phone)

	switch {
	case req.Name == "":
		return apperror.Invalid("name", "is required")
	case req.Email == "":
		return apperror.Invalid("email", "is required")
	case req.ServiceInterest == "":
		return apperror.Invalid("serviceInterest", "is required")
	case req.Message == "":
		return apperror.Invalid("message", "is required")
	}

	if err := validate.Var(req.Email, "email"); err != nil {
		return ErrInvalidEmail
	}
	if s.interests != nil && !s.interests.IsServiceInterest(req.ServiceInterest) {
		return ErrUnknownServiceInterest
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Message, error) {
	if err := s.check(&req); err != nil {
		return nil, err
	}

	m, err := s.store.Create(ctx, Message{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceInterest: req.ServiceInterest,
		Message:         req.Message,
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyContact(m)
	}
	return &m, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Message, error) {
	m, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns messages newest first.
func (s *service) List(ctx context.Context, filter Filter) ([]*Message, int, error) {
	if filter.Status != "" && !Schema.Known(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*Message, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if filter.Status == "" || all[i].Status == filter.Status {
			matched = append(matched, &all[i])
		}
	}

	page, _, _ := response.Paginate(matched, filter.Page, filter.PageSize)
	return page, len(matched), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Message, error) {
	m, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
