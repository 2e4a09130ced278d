package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStatStore_GetMissing(t *testing.T) {
	s := NewUserStatStore()
	stat, ok := s.Get("nobody")
	assert.False(t, ok)
	assert.Nil(t, stat)
}

func TestUserStatStore_GetOrInitReturnsZeroRecord(t *testing.T) {
	s := NewUserStatStore()
	stat := s.GetOrInit("u1")
	require.NotNil(t, stat)
	assert.Equal(t, "u1", stat.UserID)
	assert.Equal(t, 0, stat.CurrentStreak)
	assert.Equal(t, 0, stat.TotalLogins)
	assert.Nil(t, stat.LastLoginDate)

	// a read never persists
	assert.Equal(t, 0, s.Len())
}

func TestUserStatStore_PutAndGet(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "u1", CurrentStreak: 3, LongestStreak: 5, TotalLogins: 12})

	stat, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, 3, stat.CurrentStreak)
	assert.Equal(t, 5, stat.LongestStreak)
	assert.Equal(t, 12, stat.TotalLogins)
	assert.Equal(t, 1, s.Len())
}

func TestUserStatStore_PutStampsAuditFields(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "u1"})

	first, ok := s.Get("u1")
	require.True(t, ok)
	assert.False(t, first.CreatedAt.IsZero())
	assert.False(t, first.UpdatedAt.IsZero())

	first.TotalLogins = 1
	s.Put(first)

	second, ok := s.Get("u1")
	require.True(t, ok)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "CreatedAt must survive updates")
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestUserStatStore_GetReturnsCopy(t *testing.T) {
	s := NewUserStatStore()
	login := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	s.Put(&UserStat{UserID: "u1", CurrentStreak: 2, LastLoginDate: &login})

	stat, _ := s.Get("u1")
	stat.CurrentStreak = 99
	*stat.LastLoginDate = stat.LastLoginDate.Add(48 * time.Hour)

	fresh, _ := s.Get("u1")
	assert.Equal(t, 2, fresh.CurrentStreak, "mutating a returned record must not touch the store")
	assert.Equal(t, login, *fresh.LastLoginDate)
}

func TestUserStatStore_ForEachVisitsAll(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "a"})
	s.Put(&UserStat{UserID: "b"})
	s.Put(&UserStat{UserID: "c"})

	seen := map[string]bool{}
	s.ForEach(func(stat *UserStat) bool {
		seen[stat.UserID] = true
		return true
	})
	assert.Len(t, seen, 3)
}

func TestUserStatStore_ForEachEarlyStop(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "a"})
	s.Put(&UserStat{UserID: "b"})
	s.Put(&UserStat{UserID: "c"})

	visits := 0
	s.ForEach(func(stat *UserStat) bool {
		visits++
		return false
	})
	assert.Equal(t, 1, visits)
}

func TestUserStatStore_ForEachAllowsPutDuringIteration(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "a"})
	s.Put(&UserStat{UserID: "b"})

	// writing back the visited record must not deadlock
	s.ForEach(func(stat *UserStat) bool {
		stat.TotalLogins++
		s.Put(stat)
		return true
	})

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, 1, a.TotalLogins)
	assert.Equal(t, 1, b.TotalLogins)
}

func TestUserStatStore_ExportLoadRoundtrip(t *testing.T) {
	s := NewUserStatStore()
	s.Put(&UserStat{UserID: "a", CurrentStreak: 4})
	s.Put(&UserStat{UserID: "b", TotalLogins: 7})

	dump := s.Export()

	restored := NewUserStatStore()
	restored.Load(dump)

	assert.Equal(t, 2, restored.Len())
	a, ok := restored.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4, a.CurrentStreak)
}

func TestUserStatStore_LoadSkipsNilRecords(t *testing.T) {
	s := NewUserStatStore()
	s.Load(map[string]*UserStat{
		"a":   {UserID: "a"},
		"bad": nil,
	})
	assert.Equal(t, 1, s.Len())
}
