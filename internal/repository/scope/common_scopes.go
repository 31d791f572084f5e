package scope

import "gorm.io/gorm"

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func OrderByPaidAtDesc(db *gorm.DB) *gorm.DB {
	return db.Order("paid_at DESC")
}
