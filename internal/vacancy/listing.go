package vacancy

import (
	"sort"
	"time"

	"roomcare/internal/models"
)

// Row 空室一览中的一行
type Row struct {
	HouseID     uint
	HouseName   string
	RoomNumber  string
	MoveOutDate time.Time
	VacancyDate time.Time
	EarlyLeave  bool
	Status      Status
}

// ListVacancies 汇总空室一览
// 传入的物件列表已按调用方可见范围过滤，today由调用方提供以保证可测试
// 未确认退房日期的房间整行排除，不视为错误
func ListVacancies(properties []models.Property, today time.Time) []Row {
	var rows []Row

	for _, property := range properties {
		for _, room := range property.Rooms {
			tenancy := room.CurrentTenancy
			if tenancy == nil || !tenancy.MoveOutDecided {
				continue
			}

			// 先应用提前退房调整，再做状态判定
			effective := EffectiveMoveOut(tenancy.MoveOutDate, tenancy.EarlyLeaveDone, today)
			classification := Classify(effective, today)
			if classification == nil {
				continue
			}

			rows = append(rows, Row{
				HouseID:     property.ID,
				HouseName:   property.Name,
				RoomNumber:  room.RoomNumber,
				MoveOutDate: classification.MoveOutDate,
				VacancyDate: classification.ReadyDate,
				EarlyLeave:  tenancy.EarlyLeaveDone,
				Status:      classification.Status,
			})
		}
	}

	// 按退房日期升序，使用日历日期比较而非字符串比较
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MoveOutDate.Before(rows[j].MoveOutDate)
	})

	return rows
}
