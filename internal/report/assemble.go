package report

// RawDetail 单份报告书的原始字段，由存储层取出后交给Assemble组装
type RawDetail struct {
	PostID     uint
	HouseID    uint
	HouseName  string
	RoomID     uint
	RoomNumber string

	BeforeImages   []RawImage
	AfterImages    []RawImage
	ProposalImages []RawImage
	DamageImages   []RawImage
	AttachedFiles  []RawFile

	RoomStatus  string
	OverallNote string
}

// Detail 报告书详情视图
type Detail struct {
	PostID           uint        `json:"post_id"`
	HouseID          uint        `json:"house_id"`
	HouseName        string      `json:"house_name"`
	RoomID           uint        `json:"room_id"`
	RoomNumber       string      `json:"room_number"`
	ComparisonImages []ImagePair `json:"comparison_images"`
	ProposalImages   []ImageRef  `json:"proposal_images"`
	DamageImages     []ImageRef  `json:"damage_images"`
	AttachedFiles    []ImageRef  `json:"attached_files"`
	RoomStatus       string      `json:"room_status"`
	OverallNote      string      `json:"overall_note"`
}

// Assemble 组装报告书详情
// 前后对比图走位置配对，单组画廊和附件丢弃解析失败的条目
// 状态标签和整体备注原样透传，缺失时为空串
func Assemble(raw RawDetail, resolve URLResolver) Detail {
	return Detail{
		PostID:           raw.PostID,
		HouseID:          raw.HouseID,
		HouseName:        raw.HouseName,
		RoomID:           raw.RoomID,
		RoomNumber:       raw.RoomNumber,
		ComparisonImages: AssemblePairs(raw.BeforeImages, raw.AfterImages, resolve),
		ProposalImages:   AssembleGallery(raw.ProposalImages, resolve),
		DamageImages:     AssembleGallery(raw.DamageImages, resolve),
		AttachedFiles:    AssembleFiles(raw.AttachedFiles),
		RoomStatus:       raw.RoomStatus,
		OverallNote:      raw.OverallNote,
	}
}
