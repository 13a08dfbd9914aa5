package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFullDetail(t *testing.T) {
	resolve := testResolver(map[uint]string{
		1: "https://cdn.example.com/b1.jpg",
		2: "https://cdn.example.com/a1.jpg",
		3: "https://cdn.example.com/p1.jpg",
		4: "https://cdn.example.com/d1.jpg",
	})

	raw := RawDetail{
		PostID:     42,
		HouseID:    7,
		HouseName:  "青葉ハウス",
		RoomID:     13,
		RoomNumber: "201",

		BeforeImages:   []RawImage{{AttachmentID: 1, Note: "玄関"}},
		AfterImages:    []RawImage{{AttachmentID: 2, Note: "玄関清掃後"}},
		ProposalImages: []RawImage{{AttachmentID: 3, Note: "壁紙張替"}},
		DamageImages:   []RawImage{{AttachmentID: 4, Note: "床の傷"}},
		AttachedFiles:  []RawFile{{URL: "https://cdn.example.com/estimate.pdf", Note: "見積書"}},

		RoomStatus:  "清掃完了",
		OverallNote: "特に問題なし",
	}

	detail := Assemble(raw, resolve)

	assert.Equal(t, uint(42), detail.PostID)
	assert.Equal(t, uint(7), detail.HouseID)
	assert.Equal(t, "青葉ハウス", detail.HouseName)
	assert.Equal(t, uint(13), detail.RoomID)
	assert.Equal(t, "201", detail.RoomNumber)
	assert.Equal(t, "清掃完了", detail.RoomStatus)
	assert.Equal(t, "特に問題なし", detail.OverallNote)

	require.Len(t, detail.ComparisonImages, 1)
	assert.Equal(t, "https://cdn.example.com/b1.jpg", detail.ComparisonImages[0].Before.URL)
	assert.Equal(t, "https://cdn.example.com/a1.jpg", detail.ComparisonImages[0].After.URL)

	require.Len(t, detail.ProposalImages, 1)
	assert.Equal(t, "壁紙張替", detail.ProposalImages[0].Note)
	require.Len(t, detail.DamageImages, 1)
	assert.Equal(t, "床の傷", detail.DamageImages[0].Note)
	require.Len(t, detail.AttachedFiles, 1)
	assert.Equal(t, "https://cdn.example.com/estimate.pdf", detail.AttachedFiles[0].URL)
}

func TestAssembleEmptyCollections(t *testing.T) {
	detail := Assemble(RawDetail{PostID: 1}, testResolver(nil))

	// 各集合为空切片而非nil，序列化后为[]
	assert.NotNil(t, detail.ComparisonImages)
	assert.NotNil(t, detail.ProposalImages)
	assert.NotNil(t, detail.DamageImages)
	assert.NotNil(t, detail.AttachedFiles)
	assert.Empty(t, detail.ComparisonImages)
	assert.Empty(t, detail.ProposalImages)
}
