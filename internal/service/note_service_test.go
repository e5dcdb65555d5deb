package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"diary-go/internal/model"
	"diary-go/internal/repository"
)

func newNoteService(t *testing.T) (NoteService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewNoteService(repository.NewNoteRepository(db)), db
}

// createNotes 依次创建多篇文章，间隔少许时间保证 created_at 互不相同。
func createNotes(t *testing.T, svc NoteService, specs []struct {
	content string
	tags    []string
}) []uint {
	t.Helper()
	ids := make([]uint, 0, len(specs))
	for _, s := range specs {
		note, err := svc.Create(s.content, s.tags)
		require.NoError(t, err)
		ids = append(ids, note.ID)
		time.Sleep(5 * time.Millisecond)
	}
	return ids
}

func TestCreateAndGetNote(t *testing.T) {
	svc, _ := newNoteService(t)

	content := "# 今日日記\n\n天氣很好。"
	note, err := svc.Create(content, []string{"日記", "天氣"})
	require.NoError(t, err)
	require.NotZero(t, note.ID)

	got, err := svc.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, content, got.Content)
	assert.ElementsMatch(t, []string{"日記", "天氣"}, got.Tags)
}

func TestCreateNoteRejectsEmptyContent(t *testing.T) {
	svc, _ := newNoteService(t)

	_, err := svc.Create("", nil)
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestGetNoteNotFound(t *testing.T) {
	svc, _ := newNoteService(t)

	_, err := svc.Get(404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListFiltersByTag(t *testing.T) {
	svc, _ := newNoteService(t)
	ids := createNotes(t, svc, []struct {
		content string
		tags    []string
	}{
		{"note one", []string{"a", "b"}},
		{"note two", []string{"b"}},
		{"note three", nil},
	})

	byA, total, err := svc.List("a", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, byA, 1)
	assert.Equal(t, ids[0], byA[0].ID)

	byB, total, err := svc.List("b", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, byB, 2)
	// created_at 倒序：新的在前
	assert.Equal(t, ids[1], byB[0].ID)
	assert.Equal(t, ids[0], byB[1].ID)

	// total 是过滤后的数量，不是全局数量
	all, totalAll, err := svc.List("", 50, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), totalAll)
	assert.Len(t, all, 3)
}

func TestListPagination(t *testing.T) {
	svc, _ := newNoteService(t)
	ids := createNotes(t, svc, []struct {
		content string
		tags    []string
	}{
		{"oldest", nil},
		{"middle", nil},
		{"newest", nil},
	})

	page, total, err := svc.List("", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	// 倒序第二条即中间那篇
	assert.Equal(t, ids[1], page[0].ID)
}

func TestListEnrichesNotesWithTags(t *testing.T) {
	svc, _ := newNoteService(t)
	createNotes(t, svc, []struct {
		content string
		tags    []string
	}{
		{"tagged", []string{"x", "y"}},
		{"untagged", nil},
	})

	notes, _, err := svc.List("", 50, 0)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Empty(t, notes[0].Tags)
	assert.ElementsMatch(t, []string{"x", "y"}, notes[1].Tags)
}

func TestUpdateNoteReplacesContent(t *testing.T) {
	svc, _ := newNoteService(t)

	note, err := svc.Create("before", []string{"keep"})
	require.NoError(t, err)

	// 不提供 tags 时保留原有关联
	require.NoError(t, svc.Update(note.ID, "after", nil, false))
	got, err := svc.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
	assert.Equal(t, []string{"keep"}, got.Tags)

	// 提供 tags 时整体重建关联
	require.NoError(t, svc.Update(note.ID, "after2", []string{"new"}, true))
	got, err = svc.Get(note.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, got.Tags)
}

func TestUpdateNoteNotFound(t *testing.T) {
	svc, _ := newNoteService(t)

	err := svc.Update(404, "content", nil, false)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteNoteKeepsOrphanTags(t *testing.T) {
	svc, db := newNoteService(t)
	tagRepo := repository.NewTagRepository(db)

	note, err := svc.Create("tagged note", []string{"orphan"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(note.ID))

	_, err = svc.Get(note.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 关联行已清理
	var assocCount int64
	require.NoError(t, db.Model(&model.NoteTag{}).Where("note_id = ?", note.ID).Count(&assocCount).Error)
	assert.Zero(t, assocCount)

	// 标签本身保留，计数归零
	tags, err := tagRepo.ListWithCount()
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "orphan", tags[0].Name)
	assert.Equal(t, int64(0), tags[0].NoteCount)
}

func TestDeleteNoteNotFound(t *testing.T) {
	svc, db := newNoteService(t)

	// 预置一篇文章，验证未命中的删除不会影响既有数据
	note, err := svc.Create("survivor", []string{"t"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(404), gorm.ErrRecordNotFound)

	var noteCount, assocCount int64
	require.NoError(t, db.Model(&model.Note{}).Count(&noteCount).Error)
	require.NoError(t, db.Model(&model.NoteTag{}).Count(&assocCount).Error)
	assert.Equal(t, int64(1), noteCount)
	assert.Equal(t, int64(1), assocCount)

	_, err = svc.Get(note.ID)
	assert.NoError(t, err)
}
