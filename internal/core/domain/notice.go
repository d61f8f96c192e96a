package domain

import "time"

// PublicNotice is a broadcast message with no owner-specific target.
type PublicNotice struct {
	NoticeID  string    `json:"noticeID"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
