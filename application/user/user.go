package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/muhammadheryan/user-dashboard/application/validation"
	"github.com/muhammadheryan/user-dashboard/constant"
	"github.com/muhammadheryan/user-dashboard/model"
	"github.com/muhammadheryan/user-dashboard/repository/database"
	userrepo "github.com/muhammadheryan/user-dashboard/repository/user"
	"github.com/muhammadheryan/user-dashboard/thirdparty/rabbitmq"
	cerr "github.com/muhammadheryan/user-dashboard/utils/errors"
	"github.com/muhammadheryan/user-dashboard/utils/hasher"
	"github.com/muhammadheryan/user-dashboard/utils/logger"
	"go.uber.org/zap"
)

// UserApp orchestrates the user CRUD flows. Rejected forms are reported as
// model.ValidationErrors, every other failure as errors.CustomError.
type UserApp interface {
	List(ctx context.Context) ([]model.UserEntity, error)
	Detail(ctx context.Context, id string) (*model.UserEntity, error)
	Create(ctx context.Context, fields model.UserFields) (*model.UserEntity, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UserEntity, error)
	// Delete removes the user if it exists and reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type UserAppImpl struct {
	userRepo  userrepo.UserRepository
	validator validation.Validator
	hasher    hasher.Hasher
	publisher rabbitmq.EventPublisher
	newID     func() string
}

// NewUserApp wires the user flows. publisher may be nil to disable events.
func NewUserApp(userRepo userrepo.UserRepository, validator validation.Validator, hasher hasher.Hasher, publisher rabbitmq.EventPublisher) UserApp {
	return &UserAppImpl{
		userRepo:  userRepo,
		validator: validator,
		hasher:    hasher,
		publisher: publisher,
		newID:     uuid.NewString,
	}
}

func (s *UserAppImpl) List(ctx context.Context) ([]model.UserEntity, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.Error("[List] err userRepo.List", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	return users, nil
}

func (s *UserAppImpl) Detail(ctx context.Context, id string) (*model.UserEntity, error) {
	if id == "" {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		logger.Error("[Detail] err userRepo.Get", zap.String("id", id), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}
	return user, nil
}

func (s *UserAppImpl) Create(ctx context.Context, fields model.UserFields) (*model.UserEntity, error) {
	verrs, err := s.validator.Validate(ctx, constant.ModeCreate, fields, nil)
	if err != nil {
		logger.Error("[Create] err validator.Validate", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	hashed, err := s.hasher.Hash(fields.Password)
	if err != nil {
		logger.Error("[Create] err hasher.Hash", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrHashing)
	}

	user := &model.UserEntity{
		ID:       s.newID(),
		Name:     fields.Name,
		Email:    fields.Email,
		Phone:    fields.Phone,
		Password: hashed,
	}

	user, err = s.userRepo.Create(ctx, user)
	if err != nil {
		if verrs := duplicateErrors(err); verrs != nil {
			return nil, verrs
		}
		logger.Error("[Create] err userRepo.Create", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventUserCreated, user)
	return user, nil
}

func (s *UserAppImpl) Update(ctx context.Context, req *model.UpdateUserRequest) (*model.UserEntity, error) {
	if req.ID == "" {
		return nil, cerr.SetCustomError(constant.ErrNotFound)
	}

	verrs, err := s.validator.Validate(ctx, constant.ModeUpdate, req.Fields, &req.Reference)
	if err != nil {
		logger.Error("[Update] err validator.Validate", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	hashed, err := s.hasher.Hash(req.Fields.Password)
	if err != nil {
		logger.Error("[Update] err hasher.Hash", zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrHashing)
	}

	user := &model.UserEntity{
		ID:       req.ID,
		Name:     req.Fields.Name,
		Email:    req.Fields.Email,
		Phone:    req.Fields.Phone,
		Password: hashed,
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, cerr.SetCustomError(constant.ErrNotFound)
		}
		if verrs := duplicateErrors(err); verrs != nil {
			return nil, verrs
		}
		logger.Error("[Update] err userRepo.Update", zap.String("id", req.ID), zap.String("error", err.Error()))
		return nil, cerr.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventUserUpdated, user)
	return user, nil
}

func (s *UserAppImpl) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	user, err := s.userRepo.Get(ctx, &model.UserFilter{ID: id})
	if err != nil {
		logger.Error("[Delete] err userRepo.Get", zap.String("id", id), zap.String("error", err.Error()))
		return false, cerr.SetCustomError(constant.ErrInternal)
	}
	if user == nil {
		return false, nil
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		logger.Error("[Delete] err userRepo.Delete", zap.String("id", id), zap.String("error", err.Error()))
		return false, cerr.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventUserDeleted, user)
	return true, nil
}

func (s *UserAppImpl) publish(ctx context.Context, eventType string, user *model.UserEntity) {
	if s.publisher == nil {
		return
	}
	event := &model.UserEvent{
		Type:   eventType,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}
	if err := s.publisher.PublishUserEvent(ctx, event); err != nil {
		logger.Warn("[publish] err publisher.PublishUserEvent", zap.String("type", eventType), zap.String("error", err.Error()))
	}
}

// duplicateErrors turns a unique-key violation raised at write time into the
// same field error validation would have produced.
func duplicateErrors(err error) model.ValidationErrors {
	var dupErr *database.DuplicateKeyError
	if !errors.As(err, &dupErr) {
		return nil
	}
	msg, ok := constant.DuplicateMessage[dupErr.Column]
	if !ok {
		return nil
	}
	return model.ValidationErrors{{Field: dupErr.Column, Kind: constant.ErrDuplicate, Message: msg}}
}
