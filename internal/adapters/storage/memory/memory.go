package memory

import (
	"errors"
	"strings"

	"petrescue/internal/adapters/storage"
)

var errIDRequired = errors.New("id required")

// NewStores arma el set in-memory. Es el backend por defecto en dev y tests.
func NewStores() *storage.Set {
	return &storage.Set{
		Users:         NewUserRepo(),
		Pets:          NewPetRepo(),
		Reports:       NewReportRepo(),
		Adoptions:     NewAdoptionRepo(),
		Reviews:       NewReviewRepo(),
		Notifications: NewNotificationRepo(),
		Matches:       NewMatchRepo(),
		Chat:          NewChatRepo(),
	}
}

func blank(id string) bool {
	return strings.TrimSpace(id) == ""
}

// cloneStrings evita que quien llama comparta el slice guardado.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
