package models

import "time"

// PublicNotice is a published announcement; read-only to the portal core
type PublicNotice struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	PublishTime time.Time `json:"publishTime" db:"publish_time"`
	Publisher   string    `json:"publisher" db:"publisher"`
}
