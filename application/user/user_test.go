package user_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	appuser "github.com/muhammadheryan/user-dashboard/application/user"
	"github.com/muhammadheryan/user-dashboard/application/validation"
	"github.com/muhammadheryan/user-dashboard/constant"
	validationmocks "github.com/muhammadheryan/user-dashboard/mocks/application/validation"
	usermocks "github.com/muhammadheryan/user-dashboard/mocks/repository/user"
	rabbitmocks "github.com/muhammadheryan/user-dashboard/mocks/thirdparty/rabbitmq"
	hashermocks "github.com/muhammadheryan/user-dashboard/mocks/utils/hasher"
	"github.com/muhammadheryan/user-dashboard/model"
	"github.com/muhammadheryan/user-dashboard/repository/database"
	userrepo "github.com/muhammadheryan/user-dashboard/repository/user"
	cerr "github.com/muhammadheryan/user-dashboard/utils/errors"
	"github.com/muhammadheryan/user-dashboard/utils/hasher"
	"golang.org/x/crypto/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fields struct {
	userRepo  *usermocks.UserRepository
	validator *validationmocks.Validator
	hasher    *hashermocks.Hasher
	publisher *rabbitmocks.EventPublisher
}

func newFields(t *testing.T) fields {
	return fields{
		userRepo:  usermocks.NewUserRepository(t),
		validator: validationmocks.NewValidator(t),
		hasher:    hashermocks.NewHasher(t),
		publisher: rabbitmocks.NewEventPublisher(t),
	}
}

func (f fields) app() appuser.UserApp {
	return appuser.NewUserApp(f.userRepo, f.validator, f.hasher, f.publisher)
}

func aliceFields() model.UserFields {
	return model.UserFields{Name: "Alice", Email: "a@x.com", Phone: "081234567890", Password: "secret"}
}

func assertCustomError(t *testing.T, err error, errType constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce), "error type = %T, want CustomError", err)
	assert.Equal(t, constant.ErrorTypeCode[errType], ce.ErrorCode())
}

func TestUserApp_Create(t *testing.T) {
	tests := []struct {
		name      string
		mockCall  func(f fields)
		wantErr   bool
		errCode   constant.ErrorType
		wantVErrs model.ValidationErrors
	}{
		{
			name: "success: create new user",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.
					On("Create", mock.Anything, mock.MatchedBy(func(ent *model.UserEntity) bool {
						return ent.ID != "" &&
							ent.Name == "Alice" &&
							ent.Email == "a@x.com" &&
							ent.Phone == "081234567890" &&
							ent.Password == "hashed-secret"
					})).
					Return(func(_ context.Context, ent *model.UserEntity) (*model.UserEntity, error) { return ent, nil }).
					Once()
				f.publisher.
					On("PublishUserEvent", mock.Anything, mock.MatchedBy(func(ev *model.UserEvent) bool {
						return ev.Type == constant.EventUserCreated && ev.UserID != ""
					})).
					Return(nil).Once()
			},
		},
		{
			name: "success: publish failure does not fail the write",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(&model.UserEntity{ID: "u-1", Name: "Alice"}, nil).Once()
				f.publisher.On("PublishUserEvent", mock.Anything, mock.Anything).
					Return(errors.New("channel closed")).Once()
			},
		},
		{
			name: "error: email already exists, nothing inserted",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(model.ValidationErrors{
						{Field: "email", Kind: constant.ErrDuplicate, Message: constant.MsgEmailDuplicate},
					}, nil).Once()
			},
			wantErr: true,
			wantVErrs: model.ValidationErrors{
				{Field: "email", Kind: constant.ErrDuplicate, Message: constant.MsgEmailDuplicate},
			},
		},
		{
			name: "error: duplicate detected at write time",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, &database.DuplicateKeyError{Column: "phone", Err: errors.New("1062")}).Once()
			},
			wantErr: true,
			wantVErrs: model.ValidationErrors{
				{Field: "phone", Kind: constant.ErrDuplicate, Message: constant.MsgPhoneDuplicate},
			},
		},
		{
			name: "error: validator cannot reach database",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, database.ErrConnection).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: hashing failed",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("", errors.New("too long")).Once()
			},
			wantErr: true,
			errCode: constant.ErrHashing,
		},
		{
			name: "error: repository Create returns error",
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeCreate, aliceFields(), (*model.UserReference)(nil)).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(nil, database.ErrQuery).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Create(context.Background(), aliceFields())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				require.NotNil(t, got)
				assert.NotEmpty(t, got.ID)
				return
			}

			if tt.wantVErrs != nil {
				var verrs model.ValidationErrors
				require.True(t, errors.As(err, &verrs), "error type = %T, want ValidationErrors", err)
				assert.Equal(t, tt.wantVErrs, verrs)
				return
			}
			assertCustomError(t, err, tt.errCode)
		})
	}
}

func TestUserApp_Update(t *testing.T) {
	req := &model.UpdateUserRequest{
		ID:        "u-1",
		Fields:    aliceFields(),
		Reference: model.UserReference{Name: "Alice", Email: "a@x.com", Phone: "081111111111"},
	}

	tests := []struct {
		name      string
		req       *model.UpdateUserRequest
		mockCall  func(f fields)
		wantErr   bool
		errCode   constant.ErrorType
		wantVErrs model.ValidationErrors
	}{
		{
			name: "success: overwrite every field with hashed password",
			req:  req,
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeUpdate, req.Fields, &req.Reference).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Update", mock.Anything, &model.UserEntity{
					ID:       "u-1",
					Name:     "Alice",
					Email:    "a@x.com",
					Phone:    "081234567890",
					Password: "hashed-secret",
				}).Return(nil).Once()
				f.publisher.On("PublishUserEvent", mock.Anything, mock.MatchedBy(func(ev *model.UserEvent) bool {
					return ev.Type == constant.EventUserUpdated && ev.UserID == "u-1"
				})).Return(nil).Once()
			},
		},
		{
			name: "error: phone used by another user",
			req:  req,
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeUpdate, req.Fields, &req.Reference).
					Return(model.ValidationErrors{
						{Field: "phone", Kind: constant.ErrDuplicate, Message: constant.MsgPhoneDuplicate},
					}, nil).Once()
			},
			wantErr: true,
			wantVErrs: model.ValidationErrors{
				{Field: "phone", Kind: constant.ErrDuplicate, Message: constant.MsgPhoneDuplicate},
			},
		},
		{
			name: "error: unknown id",
			req:  req,
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeUpdate, req.Fields, &req.Reference).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(userrepo.ErrNotFound).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:    "error: missing id",
			req:     &model.UpdateUserRequest{Fields: aliceFields()},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: repository Update returns error",
			req:  req,
			mockCall: func(f fields) {
				f.validator.On("Validate", mock.Anything, constant.ModeUpdate, req.Fields, &req.Reference).
					Return(nil, nil).Once()
				f.hasher.On("Hash", "secret").Return("hashed-secret", nil).Once()
				f.userRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.UserEntity")).
					Return(database.ErrConnection).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Update(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Update() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				require.NotNil(t, got)
				assert.Equal(t, "hashed-secret", got.Password)
				return
			}

			if tt.wantVErrs != nil {
				var verrs model.ValidationErrors
				require.True(t, errors.As(err, &verrs))
				assert.Equal(t, tt.wantVErrs, verrs)
				return
			}
			assertCustomError(t, err, tt.errCode)
		})
	}
}

func TestUserApp_Delete(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		mockCall func(f fields)
		want     bool
		wantErr  bool
	}{
		{
			name: "success: delete existing user",
			id:   "u-1",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).
					Return(&model.UserEntity{ID: "u-1", Name: "Alice"}, nil).Once()
				f.userRepo.On("Delete", mock.Anything, "u-1").Return(nil).Once()
				f.publisher.On("PublishUserEvent", mock.Anything, mock.MatchedBy(func(ev *model.UserEvent) bool {
					return ev.Type == constant.EventUserDeleted && ev.UserID == "u-1"
				})).Return(nil).Once()
			},
			want: true,
		},
		{
			name: "success: unknown id is a no-op",
			id:   "u-404",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-404"}).Return(nil, nil).Once()
			},
			want: false,
		},
		{
			name: "success: empty id touches nothing",
			id:   "",
			want: false,
		},
		{
			name: "error: repository Delete returns error",
			id:   "u-1",
			mockCall: func(f fields) {
				f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).
					Return(&model.UserEntity{ID: "u-1"}, nil).Once()
				f.userRepo.On("Delete", mock.Anything, "u-1").Return(database.ErrQuery).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().Delete(context.Background(), tt.id)
			if tt.wantErr {
				assertCustomError(t, err, constant.ErrInternal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserApp_Detail(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFields(t)
		want := &model.UserEntity{ID: "u-1", Name: "Alice"}
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).Return(want, nil).Once()

		got, err := f.app().Detail(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("error: unknown id is not found", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-404"}).Return(nil, nil).Once()

		_, err := f.app().Detail(context.Background(), "u-404")
		assertCustomError(t, err, constant.ErrNotFound)
	})

	t.Run("error: repository failure", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).Return(nil, database.ErrConnection).Once()

		_, err := f.app().Detail(context.Background(), "u-1")
		assertCustomError(t, err, constant.ErrInternal)
	})
}

func TestUserApp_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("List", mock.Anything).Return([]model.UserEntity{{ID: "u-1"}, {ID: "u-2"}}, nil).Once()

		got, err := f.app().List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("error: repository failure", func(t *testing.T) {
		f := newFields(t)
		f.userRepo.On("List", mock.Anything).Return(nil, database.ErrConnection).Once()

		_, err := f.app().List(context.Background())
		assertCustomError(t, err, constant.ErrInternal)
	})
}

func TestUserApp_NilPublisher(t *testing.T) {
	userRepo := usermocks.NewUserRepository(t)
	userRepo.On("Get", mock.Anything, &model.UserFilter{ID: "u-1"}).Return(&model.UserEntity{ID: "u-1"}, nil).Once()
	userRepo.On("Delete", mock.Anything, "u-1").Return(nil).Once()

	app := appuser.NewUserApp(userRepo, validationmocks.NewValidator(t), hashermocks.NewHasher(t), nil)

	deleted, err := app.Delete(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, deleted)
}

// memoryRepo is an in-memory UserRepository that enforces the same unique
// columns as the users table.
type memoryRepo struct {
	mu    sync.Mutex
	users map[string]model.UserEntity
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[string]model.UserEntity{}}
}

func (r *memoryRepo) List(_ context.Context) ([]model.UserEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.UserEntity, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, filter *model.UserFilter) (*model.UserEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[filter.ID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memoryRepo) Exists(_ context.Context, column, value string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if column == constant.FieldName && u.Name == value ||
			column == constant.FieldEmail && u.Email == value ||
			column == constant.FieldPhone && u.Phone == value {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Create(_ context.Context, data *model.UserEntity) (*model.UserEntity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[data.ID] = *data
	return data, nil
}

func (r *memoryRepo) Update(_ context.Context, data *model.UserEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[data.ID]; !ok {
		return userrepo.ErrNotFound
	}
	r.users[data.ID] = *data
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func TestUserApp_CreateThenDetail(t *testing.T) {
	repo := newMemoryRepo()
	h := hasher.New(bcrypt.MinCost)
	app := appuser.NewUserApp(repo, validation.NewValidator(repo), h, nil)
	ctx := context.Background()

	created, err := app.Create(ctx, aliceFields())
	require.NoError(t, err)

	got, err := app.Detail(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "081234567890", got.Phone)
	assert.NotEqual(t, "secret", got.Password)
	assert.NoError(t, h.Compare(got.Password, "secret"))

	// the same form again collides on every unique column
	_, err = app.Create(ctx, aliceFields())
	var verrs model.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has(constant.FieldName))
	assert.True(t, verrs.Has(constant.FieldEmail))
	assert.True(t, verrs.Has(constant.FieldPhone))

	// unchanged values pass on update because they equal the reference
	_, err = app.Update(ctx, &model.UpdateUserRequest{
		ID:        created.ID,
		Fields:    model.UserFields{Name: "Alice", Email: "a@x.com", Phone: "081234567890", Password: "n3w"},
		Reference: model.UserReference{Name: "Alice", Email: "a@x.com", Phone: "081234567890"},
	})
	require.NoError(t, err)

	deleted, err := app.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = app.Detail(ctx, created.ID)
	assert.True(t, cerr.IsType(err, constant.ErrNotFound))
}
