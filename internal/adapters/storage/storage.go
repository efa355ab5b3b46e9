package storage

import (
	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/chat"
	"petrescue/internal/domain/matches"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
)

// Set agrupa los repos de un mismo backend (memory, postgres o mongo).
type Set struct {
	Users         users.Repository
	Pets          pets.Repository
	Reports       reports.Repository
	Adoptions     adoptions.Repository
	Reviews       reviews.Repository
	Notifications notifications.Repository
	Matches       matches.Repository
	Chat          chat.Repository
}
