package vacancy

import (
	"time"
)

// ReadyDelayDays 退房日到可入住日的间隔天数
const ReadyDelayDays = 7

// Status 空室状态
type Status string

const (
	StatusRetiringSoon Status = "retiring_soon" // 退去预定：退房日在今天及以后
	StatusAvailable    Status = "available"     // 可入住：退房日翌日起到可入住日当天
	StatusOverdue      Status = "overdue"       // 超期：可入住日翌日以后
)

// Label 状态标签的线上格式，颜色和文案对外部消费方保持逐字节兼容
type Label struct {
	Color string `json:"color"`
	Text  string `json:"text"`
}

// Label 返回状态对应的标签
func (s Status) Label() Label {
	switch s {
	case StatusRetiringSoon:
		return Label{Color: "#888888", Text: "retiring soon"}
	case StatusAvailable:
		return Label{Color: "#44BB44", Text: "available"}
	default:
		return Label{Color: "#FF4444", Text: "overdue"}
	}
}

// UndecidedLabel 未确认退房日期时详情页使用的占位标签
func UndecidedLabel() Label {
	return Label{Color: "#808080", Text: "undecided"}
}

// Classification 基于日期事实推导出的空室判定结果，不做持久化，每次评估重新计算
type Classification struct {
	Status      Status
	MoveOutDate time.Time // 退房日期
	ReadyDate   time.Time // 可入住日期 = 退房日期 + 7天
}

// Truncate 截断到当天零点，按本地日历日期处理，不做时区换算
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Classify 根据退房日期和今天判定空室状态
// moveOutDate为nil表示尚未确认退房（未定），返回nil由调用方决定处理方式，不报错
func Classify(moveOutDate *time.Time, today time.Time) *Classification {
	if moveOutDate == nil {
		return nil
	}

	moveOut := Truncate(*moveOutDate)
	now := Truncate(today)
	ready := moveOut.AddDate(0, 0, ReadyDelayDays)

	var status Status
	switch {
	case !moveOut.Before(now):
		// 退房日在今天及以后（含当天）为退去预定
		status = StatusRetiringSoon
	case !now.After(ready):
		// 今天不晚于可入住日（含当天）为可入住
		status = StatusAvailable
	default:
		status = StatusOverdue
	}

	return &Classification{
		Status:      status,
		MoveOutDate: moveOut,
		ReadyDate:   ready,
	}
}

// EffectiveMoveOut 提前退房时生效的退房日期
// 已提前退房的房间视为当天退房，覆盖原记录的退房日期
// 该规则在首次评估当天必然得到StatusRetiringSoon，是沿用自现有系统的行为
func EffectiveMoveOut(moveOutDate *time.Time, earlyLeaveDone bool, today time.Time) *time.Time {
	if earlyLeaveDone {
		now := Truncate(today)
		return &now
	}
	return moveOutDate
}
