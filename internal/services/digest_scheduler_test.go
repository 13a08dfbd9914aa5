package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePublisher 记录发布的消息
type fakePublisher struct {
	channel  string
	messages []string
}

func (f *fakePublisher) Publish(channel, message string) error {
	f.channel = channel
	f.messages = append(f.messages, message)
	return nil
}

func TestDigestSchedulerPublishDigest(t *testing.T) {
	db := setupTestDB(t)
	publisher := &fakePublisher{}
	scheduler := NewDigestScheduler(db, publisher, "roomcare:events", "0 6 * * *")

	property := seedProperty(t, db, "青葉ハウス", "青葉", "101", "102", "103")

	today := testDate(2024, 1, 15)
	moveOutFuture := testDate(2024, 1, 20)
	moveOutRecent := testDate(2024, 1, 12)
	moveOutOld := testDate(2024, 1, 1)
	seedTenancy(t, db, &property.Rooms[0], "C001", "佐藤", &moveOutFuture, false)
	seedTenancy(t, db, &property.Rooms[1], "C002", "鈴木", &moveOutRecent, false)
	seedTenancy(t, db, &property.Rooms[2], "C003", "高橋", &moveOutOld, false)

	require.NoError(t, scheduler.PublishDigest(today))
	require.Len(t, publisher.messages, 1)
	assert.Equal(t, "roomcare:events", publisher.channel)

	var digest VacancyDigest
	require.NoError(t, json.Unmarshal([]byte(publisher.messages[0]), &digest))

	assert.Equal(t, "2024-01-15", digest.Date)
	assert.Equal(t, 3, digest.TotalRooms)
	assert.Equal(t, 1, digest.RetiringSoon)
	assert.Equal(t, 1, digest.Available)
	assert.Equal(t, 1, digest.Overdue)
	assert.Len(t, digest.Rows, 3)
}

func TestDigestSchedulerSkipsInactiveProperties(t *testing.T) {
	db := setupTestDB(t)
	publisher := &fakePublisher{}
	scheduler := NewDigestScheduler(db, publisher, "roomcare:events", "0 6 * * *")

	property := seedProperty(t, db, "休止ハウス", "休止", "101")
	moveOut := testDate(2024, 1, 20)
	seedTenancy(t, db, &property.Rooms[0], "C001", "佐藤", &moveOut, false)

	require.NoError(t, db.Model(property).Update("status", "inactive").Error)

	require.NoError(t, scheduler.PublishDigest(testDate(2024, 1, 15)))
	require.Len(t, publisher.messages, 1)

	var digest VacancyDigest
	require.NoError(t, json.Unmarshal([]byte(publisher.messages[0]), &digest))
	assert.Equal(t, 0, digest.TotalRooms)
}
