package services

import (
	"testing"
	"time"

	"roomcare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache 内存缓存桩，记录写入的TTL
type fakeCache struct {
	data    map[string]string
	lastTTL time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(key string) (string, bool, error) {
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeCache) Set(key, value string, ttl time.Duration) error {
	f.data[key] = value
	f.lastTTL = ttl
	return nil
}

func (f *fakeCache) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func seedStaff(t *testing.T, svc *StaffService, loginID, password string, houseIDs []uint) *models.Staff {
	t.Helper()
	staff, err := svc.Create(&CreateStaffInput{
		LoginID:  loginID,
		Password: password,
		Name:     "テスト太郎",
		HouseIDs: houseIDs,
	})
	require.NoError(t, err)
	return staff
}

func TestStaffServiceLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStaffService(db, newFakeCache(), 30*time.Minute)

	seedStaff(t, svc, "cleaner01", "secret123", []uint{1, 2})

	staff, err := svc.Login("cleaner01", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "cleaner01", staff.LoginID)
	assert.Equal(t, []uint{1, 2}, staff.VisibleHouseIDs())
	assert.NotNil(t, staff.LastLoginAt)

	// 密码错误和账号不存在返回同一错误
	_, err = svc.Login("cleaner01", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStaffServiceLoginDisabled(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStaffService(db, newFakeCache(), 30*time.Minute)

	staff := seedStaff(t, svc, "cleaner02", "secret123", nil)

	status := models.StaffStatusInactive
	_, err := svc.Update(staff.ID, &UpdateStaffInput{Status: &status})
	require.NoError(t, err)

	_, err = svc.Login("cleaner02", "secret123")
	assert.ErrorIs(t, err, ErrStaffDisabled)
}

func TestStaffServiceListCaching(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeCache()
	ttl := 30 * time.Minute
	svc := NewStaffService(db, fake, ttl)

	seedStaff(t, svc, "cleaner01", "secret123", nil)

	// 首次查询写入缓存，TTL为注入值
	staffs, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, staffs, 1)
	assert.Equal(t, ttl, fake.lastTTL)
	assert.Contains(t, fake.data, staffListCacheKey)

	// 绕过服务直接改库，缓存命中时返回旧数据
	require.NoError(t, db.Model(&models.Staff{}).Where("login_id = ?", "cleaner01").
		Update("name", "改名済").Error)

	staffs, err = svc.List()
	require.NoError(t, err)
	require.Len(t, staffs, 1)
	assert.Equal(t, "テスト太郎", staffs[0].Name)
}

func TestStaffServiceWriteInvalidatesCache(t *testing.T) {
	db := setupTestDB(t)
	fake := newFakeCache()
	svc := NewStaffService(db, fake, 30*time.Minute)

	seedStaff(t, svc, "cleaner01", "secret123", nil)

	_, err := svc.List()
	require.NoError(t, err)
	assert.Contains(t, fake.data, staffListCacheKey)

	// 创建新账号后缓存被失效
	seedStaff(t, svc, "cleaner02", "secret123", nil)
	assert.NotContains(t, fake.data, staffListCacheKey)

	staffs, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, staffs, 2)
}

func TestStaffServiceNilCache(t *testing.T) {
	// 缓存未注入时直接查库
	db := setupTestDB(t)
	svc := NewStaffService(db, nil, 0)

	seedStaff(t, svc, "cleaner01", "secret123", nil)

	staffs, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, staffs, 1)
}

func TestStaffServiceDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStaffService(db, newFakeCache(), 30*time.Minute)

	staff := seedStaff(t, svc, "cleaner01", "secret123", nil)

	require.NoError(t, svc.Delete(staff.ID))

	err := svc.Delete(staff.ID)
	assert.Error(t, err)
}
