package services

import (
	"encoding/json"
	"time"

	"roomcare/internal/models"
	"roomcare/internal/vacancy"
	"roomcare/pkg/cache"
	"roomcare/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DigestScheduler 每日空室摘要调度器
// 按cron表达式定时汇总空室状况并发布到Redis频道，供外部消费方订阅
type DigestScheduler struct {
	db        *gorm.DB
	publisher cache.Publisher
	channel   string
	spec      string
	cron      *cron.Cron
}

// VacancyDigest 发布到频道的摘要消息
type VacancyDigest struct {
	Date         string        `json:"date"` // YYYY-MM-DD
	TotalRooms   int           `json:"total_rooms"`
	RetiringSoon int           `json:"retiring_soon"`
	Available    int           `json:"available"`
	Overdue      int           `json:"overdue"`
	Rows         []vacancy.Row `json:"rows"`
}

func NewDigestScheduler(db *gorm.DB, publisher cache.Publisher, channel, spec string) *DigestScheduler {
	return &DigestScheduler{
		db:        db,
		publisher: publisher,
		channel:   channel,
		spec:      spec,
	}
}

// Start 启动调度器
func (s *DigestScheduler) Start() error {
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.PublishDigest(time.Now()); err != nil {
			logger.GetLogger().Errorf("发布空室摘要失败: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	logger.GetLogger().Infof("空室摘要调度器已启动: %s -> %s", s.spec, s.channel)
	return nil
}

// Stop 停止调度器，等待运行中的任务完成
func (s *DigestScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	logger.GetLogger().Info("空室摘要调度器已停止")
}

// PublishDigest 汇总当天空室状况并发布
func (s *DigestScheduler) PublishDigest(today time.Time) error {
	var properties []models.Property
	err := s.db.
		Where("status = ?", models.PropertyStatusActive).
		Order("id").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB {
			return db.Order("room_slots.sort_order, room_slots.room_number")
		}).
		Preload("Rooms.CurrentTenancy").
		Find(&properties).Error
	if err != nil {
		return err
	}

	rows := vacancy.ListVacancies(properties, today)

	digest := VacancyDigest{
		Date:       vacancy.Truncate(today).Format("2006-01-02"),
		TotalRooms: len(rows),
		Rows:       rows,
	}
	for _, row := range rows {
		switch row.Status {
		case vacancy.StatusRetiringSoon:
			digest.RetiringSoon++
		case vacancy.StatusAvailable:
			digest.Available++
		case vacancy.StatusOverdue:
			digest.Overdue++
		}
	}

	data, err := json.Marshal(digest)
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(s.channel, string(data)); err != nil {
		return err
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"total":         digest.TotalRooms,
		"retiring_soon": digest.RetiringSoon,
		"available":     digest.Available,
		"overdue":       digest.Overdue,
	}).Info("空室摘要已发布")

	return nil
}
