package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentServiceRegister(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAttachmentService(db)

	attachment, err := svc.Register(&RegisterAttachmentInput{
		URL:         "https://cdn.example.com/photo.jpg",
		FileName:    "photo.jpg",
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	// 对象键为有效的uuid
	_, err = uuid.Parse(attachment.StorageKey)
	assert.NoError(t, err)

	// 每次登记签发不同的对象键
	second, err := svc.Register(&RegisterAttachmentInput{
		URL: "https://cdn.example.com/photo2.jpg",
	})
	require.NoError(t, err)
	assert.NotEqual(t, attachment.StorageKey, second.StorageKey)

	found, err := svc.GetByID(attachment.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photo.jpg", found.URL)
}
