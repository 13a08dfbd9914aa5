package vacancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestClassifyNilMoveOut(t *testing.T) {
	assert.Nil(t, Classify(nil, date(2024, 1, 15)))
}

func TestClassifyRetiringSoon(t *testing.T) {
	today := date(2024, 1, 15)

	// 退房日在未来
	future := date(2024, 1, 20)
	c := Classify(&future, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusRetiringSoon, c.Status)

	// 退房日恰好是今天
	sameDay := date(2024, 1, 15)
	c = Classify(&sameDay, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusRetiringSoon, c.Status)
}

func TestClassifyAvailable(t *testing.T) {
	today := date(2024, 1, 15)

	// 昨天退房
	yesterday := date(2024, 1, 14)
	c := Classify(&yesterday, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusAvailable, c.Status)

	// 恰好7天前退房，今天是可入住日当天
	sevenDaysAgo := date(2024, 1, 8)
	c = Classify(&sevenDaysAgo, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusAvailable, c.Status)
	assert.Equal(t, today, c.ReadyDate)
}

func TestClassifyOverdue(t *testing.T) {
	today := date(2024, 1, 15)

	// 8天前退房，可入住日已过
	eightDaysAgo := date(2024, 1, 7)
	c := Classify(&eightDaysAgo, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusOverdue, c.Status)
}

func TestClassifyReadyDateIsSevenDaysAfterMoveOut(t *testing.T) {
	moveOut := date(2024, 1, 20)
	c := Classify(&moveOut, date(2024, 1, 10))
	require.NotNil(t, c)
	assert.Equal(t, date(2024, 1, 27), c.ReadyDate)

	// 跨月
	moveOut = date(2024, 1, 28)
	c = Classify(&moveOut, date(2024, 1, 10))
	require.NotNil(t, c)
	assert.Equal(t, date(2024, 2, 4), c.ReadyDate)
}

func TestClassifyOverdueScenario(t *testing.T) {
	// 1月20日退房，可入住日为1月27日，1月29日查看时已超期
	moveOut := date(2024, 1, 20)
	c := Classify(&moveOut, date(2024, 1, 29))
	require.NotNil(t, c)
	assert.Equal(t, StatusOverdue, c.Status)
	assert.Equal(t, date(2024, 1, 27), c.ReadyDate)
}

func TestClassifyTruncatesTimeOfDay(t *testing.T) {
	// 时刻部分不影响日期判定
	moveOut := time.Date(2024, 1, 15, 23, 59, 0, 0, time.Local)
	today := time.Date(2024, 1, 15, 0, 1, 0, 0, time.Local)
	c := Classify(&moveOut, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusRetiringSoon, c.Status)
	assert.Equal(t, date(2024, 1, 15), c.MoveOutDate)
}

func TestEffectiveMoveOutEarlyLeave(t *testing.T) {
	today := date(2024, 1, 15)

	// 提前退房覆盖原退房日期为今天
	recorded := date(2024, 3, 1)
	effective := EffectiveMoveOut(&recorded, true, today)
	require.NotNil(t, effective)
	assert.Equal(t, today, *effective)

	// 原日期未定时同样视为今天退房
	effective = EffectiveMoveOut(nil, true, today)
	require.NotNil(t, effective)
	assert.Equal(t, today, *effective)

	// 首次评估当天必然为退去预定
	c := Classify(effective, today)
	require.NotNil(t, c)
	assert.Equal(t, StatusRetiringSoon, c.Status)
}

func TestEffectiveMoveOutNoEarlyLeave(t *testing.T) {
	today := date(2024, 1, 15)

	recorded := date(2024, 3, 1)
	assert.Equal(t, &recorded, EffectiveMoveOut(&recorded, false, today))
	assert.Nil(t, EffectiveMoveOut(nil, false, today))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, Label{Color: "#888888", Text: "retiring soon"}, StatusRetiringSoon.Label())
	assert.Equal(t, Label{Color: "#44BB44", Text: "available"}, StatusAvailable.Label())
	assert.Equal(t, Label{Color: "#FF4444", Text: "overdue"}, StatusOverdue.Label())
	assert.Equal(t, Label{Color: "#808080", Text: "undecided"}, UndecidedLabel())
}
