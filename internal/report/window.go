package report

import (
	"time"

	"roomcare/internal/models"
	"roomcare/internal/vacancy"
)

// WindowDays 报告书一览的默认回溯天数
const WindowDays = 30

// FilterWindow 按时间窗口和可见物件范围筛选报告书
// 创建日期恰好等于窗口下界（windowDays天前）的报告书包含在内，无上界
// 此处有意不排序，顺序交由上层决定
func FilterWindow(reports []models.InspectionReport, allowedPropertyIDs map[uint]struct{}, today time.Time, windowDays int) []models.InspectionReport {
	cutoff := vacancy.Truncate(today).AddDate(0, 0, -windowDays)

	result := make([]models.InspectionReport, 0, len(reports))
	for _, r := range reports {
		if _, ok := allowedPropertyIDs[r.PropertyID]; !ok {
			continue
		}
		if vacancy.Truncate(r.CreatedAt).Before(cutoff) {
			continue
		}
		result = append(result, r)
	}

	return result
}
