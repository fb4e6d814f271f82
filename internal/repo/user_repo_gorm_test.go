package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-user-service/internal/core/database"
	"go-user-service/internal/domain"
)

func newTestRepo(t *testing.T, name string) *UserRepo {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return NewUserRepo(db)
}

func mkUser(email string) *domain.User {
	return &domain.User{
		ID:           "id-" + email,
		Email:        email,
		PasswordHash: "x",
		Fullname:     "User " + email,
	}
}

func TestCreateAndFind(t *testing.T) {
	r := newTestRepo(t, "repo_create")
	ctx := context.Background()

	u := mkUser("a@x.com")
	require.NoError(t, r.Create(ctx, u))

	got, err := r.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	byID, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	none, err := r.FindByEmail(ctx, "missing@x.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCreateDuplicateEmail(t *testing.T) {
	r := newTestRepo(t, "repo_dup")
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, mkUser("dup@x.com")))

	again := mkUser("dup@x.com")
	again.ID = "other-id"
	err := r.Create(ctx, again)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestSoftDelete(t *testing.T) {
	r := newTestRepo(t, "repo_softdel")
	ctx := context.Background()

	u := mkUser("gone@x.com")
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.SoftDelete(ctx, u.ID))

	// 活跃查询不再命中
	got, err := r.FindByEmail(ctx, "gone@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
	byID, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, byID)

	// 行仍然在，Any 查询可见
	any, err := r.FindByEmailAny(ctx, "gone@x.com")
	require.NoError(t, err)
	require.NotNil(t, any)
	assert.True(t, any.DeletedAt.Valid)

	// 第二次删除 → NotFound
	assert.ErrorIs(t, r.SoftDelete(ctx, u.ID), domain.ErrUserNotFound)
}

func TestSoftDeleteMissing(t *testing.T) {
	r := newTestRepo(t, "repo_softdel_missing")
	assert.ErrorIs(t, r.SoftDelete(context.Background(), "no-such-id"), domain.ErrUserNotFound)
}

func TestUpdatePartialMerge(t *testing.T) {
	r := newTestRepo(t, "repo_update")
	ctx := context.Background()

	u := mkUser("upd@x.com")
	u.PhoneNumber = "111"
	u.Position = "engineer"
	require.NoError(t, r.Create(ctx, u))

	got, err := r.Update(ctx, u.ID, map[string]any{"fullname": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Fullname)
	// 未提供的列保持原值
	assert.Equal(t, "111", got.PhoneNumber)
	assert.Equal(t, "engineer", got.Position)

	_, err = r.Update(ctx, "no-such-id", map[string]any{"fullname": "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateSoftDeleted(t *testing.T) {
	r := newTestRepo(t, "repo_update_deleted")
	ctx := context.Background()

	u := mkUser("del-upd@x.com")
	require.NoError(t, r.Create(ctx, u))
	require.NoError(t, r.SoftDelete(ctx, u.ID))

	_, err := r.Update(ctx, u.ID, map[string]any{"fullname": "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListPaginationAndSearch(t *testing.T) {
	r := newTestRepo(t, "repo_list")
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		u := &domain.User{
			ID:           fmt.Sprintf("id-%02d", i),
			Email:        fmt.Sprintf("user%02d@x.com", i),
			PasswordHash: "x",
			Fullname:     fmt.Sprintf("Member %02d", i),
		}
		require.NoError(t, r.Create(ctx, u))
	}
	// 软删的不计入
	deleted := mkUser("deleted@x.com")
	require.NoError(t, r.Create(ctx, deleted))
	require.NoError(t, r.SoftDelete(ctx, deleted.ID))

	items, total, err := r.List(ctx, 3, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 25, total)
	assert.Len(t, items, 5)

	// 忽略大小写，匹配 fullname 或 email
	items, total, err = r.List(ctx, 1, 10, "MEMBER 01")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Member 01", items[0].Fullname)

	items, total, err = r.List(ctx, 1, 10, "user02@")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)

	items, total, err = r.List(ctx, 1, 10, "no-match-at-all")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	assert.Empty(t, items)

	// 软删行搜索也不可见
	_, total, err = r.List(ctx, 1, 10, "deleted@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestListDefaults(t *testing.T) {
	r := newTestRepo(t, "repo_list_defaults")
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, mkUser("one@x.com")))

	// page/limit 非法时落默认值
	items, total, err := r.List(ctx, 0, 0, "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}
