package stores

import (
	"fmt"

	"gorm.io/gorm"
)

// usageCounters implements the counting logic shared by every gorm-backed
// store. The queries are driver-agnostic.
type usageCounters struct {
	db    *gorm.DB
	limit int
}

func (u *usageCounters) CheckLimit(userID, category, feature string) (Decision, error) {
	if u.db == nil {
		return Decision{}, fmt.Errorf("database connection is nil")
	}

	var rec UsageRecord
	err := u.db.
		Where("user_id = ? AND category = ? AND feature = ? AND day = ?", userID, category, feature, today()).
		First(&rec).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return Decision{}, fmt.Errorf("failed to read usage record: %w", err)
	}

	remaining := u.limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: rec.Count < u.limit, Remaining: remaining}, nil
}

func (u *usageCounters) IncrementUsage(userID, category, feature string) error {
	if u.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	res := u.db.Model(&UsageRecord{}).
		Where("user_id = ? AND category = ? AND feature = ? AND day = ?", userID, category, feature, today()).
		Update("count", gorm.Expr("count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment usage: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	rec := UsageRecord{
		UserID:   userID,
		Category: category,
		Feature:  feature,
		Day:      today(),
		Count:    1,
	}
	if err := u.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create usage record: %w", err)
	}
	return nil
}

func (u *usageCounters) PurgeStale() error {
	if u.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	res := u.db.Unscoped().Where("day < ?", today()).Delete(&UsageRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to purge stale usage records: %w", res.Error)
	}
	return nil
}
