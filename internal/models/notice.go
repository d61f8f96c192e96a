package models

import "time"

// PublicNotice is the database/wire row for a broadcast notice.
type PublicNotice struct {
	NoticeID  string    `json:"noticeID" db:"notice_id" validate:"required"`
	Message   string    `json:"message" db:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
