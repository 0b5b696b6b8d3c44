package flash_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/muhammadheryan/user-dashboard/application/flash"
	redismocks "github.com/muhammadheryan/user-dashboard/mocks/repository/redis"
	redisrepo "github.com/muhammadheryan/user-dashboard/repository/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFlashApp_Set(t *testing.T) {
	redisRepo := redismocks.NewRedisRepository(t)
	redisRepo.
		On("SetWithTTL", mock.Anything, "flash:s1:msg", "User berhasil dimasukkan.", time.Minute).
		Return(nil).
		Once()

	app := flash.NewFlashApp(redisRepo, time.Minute)
	require.NoError(t, app.Set(context.Background(), "s1", "msg", "User berhasil dimasukkan."))
}

func TestFlashApp_SetDefaultTTL(t *testing.T) {
	redisRepo := redismocks.NewRedisRepository(t)
	redisRepo.
		On("SetWithTTL", mock.Anything, "flash:s1:msg", "hi", flash.DefaultTTL).
		Return(nil).
		Once()

	app := flash.NewFlashApp(redisRepo, 0)
	require.NoError(t, app.Set(context.Background(), "s1", "msg", "hi"))
}

func TestFlashApp_Pop(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		mockCall  func(r *redismocks.RedisRepository)
		want      string
		wantErr   bool
	}{
		{
			name:      "success: pending message",
			sessionID: "s1",
			mockCall: func(r *redismocks.RedisRepository) {
				r.On("GetDel", mock.Anything, "flash:s1:msg").Return("User berhasil dihapus.", nil).Once()
			},
			want: "User berhasil dihapus.",
		},
		{
			name:      "success: nothing pending",
			sessionID: "s1",
			mockCall: func(r *redismocks.RedisRepository) {
				r.On("GetDel", mock.Anything, "flash:s1:msg").Return("", nil).Once()
			},
			want: "",
		},
		{
			name:      "success: no session skips redis",
			sessionID: "",
			want:      "",
		},
		{
			name:      "error: redis failure",
			sessionID: "s1",
			mockCall: func(r *redismocks.RedisRepository) {
				r.On("GetDel", mock.Anything, "flash:s1:msg").Return("", errors.New("conn refused")).Once()
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			redisRepo := redismocks.NewRedisRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(redisRepo)
			}

			app := flash.NewFlashApp(redisRepo, time.Minute)
			got, err := app.Pop(context.Background(), tt.sessionID, "msg")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlashApp_ReadOnce(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := flash.NewFlashApp(redisrepo.NewRepository(client), time.Minute)

	require.NoError(t, app.Set(ctx, "s1", "msg", "first"))
	require.NoError(t, app.Set(ctx, "s1", "msg", "second"))

	got, err := app.Pop(ctx, "s2", "msg")
	require.NoError(t, err)
	assert.Empty(t, got, "other sessions never see the message")

	got, err = app.Pop(ctx, "s1", "msg")
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	got, err = app.Pop(ctx, "s1", "msg")
	require.NoError(t, err)
	assert.Empty(t, got)
}
