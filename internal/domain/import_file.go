package domain

import "time"

type ImportFile struct {
	ID        int64
	ProjectID int64
	Name      string
	DeletedAt *time.Time
}

type PurgeResult struct {
	Files       int64 `json:"files"`
	Sales       int64 `json:"sales"`
	Impressions int64 `json:"impressions"`
}
