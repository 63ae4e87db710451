package store

import "time"

type Store struct {
	ID        string
	Code      string
	Name      string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
