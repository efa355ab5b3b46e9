package mongodb

import (
	"time"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/chat"
	"petrescue/internal/domain/matches"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
)

type userDoc struct {
	ID                        string    `bson:"_id"`
	Email                     string    `bson:"email"`
	Name                      string    `bson:"name"`
	Phone                     string    `bson:"phone"`
	PasswordHash              string    `bson:"password_hash"`
	Role                      string    `bson:"role"`
	IsActive                  bool      `bson:"is_active"`
	Address                   string    `bson:"address"`
	ThemePreference           string    `bson:"theme_preference"`
	EmailNotificationsEnabled bool      `bson:"email_notifications_enabled"`
	CreatedAt                 time.Time `bson:"created_at"`
	UpdatedAt                 time.Time `bson:"updated_at"`
}

func toUserDoc(u users.User) userDoc {
	return userDoc{
		ID:                        u.ID,
		Email:                     u.Email,
		Name:                      u.Name,
		Phone:                     u.Phone,
		PasswordHash:              u.PasswordHash,
		Role:                      u.Role,
		IsActive:                  u.IsActive,
		Address:                   u.Address,
		ThemePreference:           string(u.ThemePreference),
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		CreatedAt:                 u.CreatedAt,
		UpdatedAt:                 u.UpdatedAt,
	}
}

func (d userDoc) toDomain() users.User {
	return users.User{
		ID:                        d.ID,
		Email:                     d.Email,
		Name:                      d.Name,
		Phone:                     d.Phone,
		PasswordHash:              d.PasswordHash,
		Role:                      d.Role,
		IsActive:                  d.IsActive,
		Address:                   d.Address,
		ThemePreference:           users.Theme(d.ThemePreference),
		EmailNotificationsEnabled: d.EmailNotificationsEnabled,
		CreatedAt:                 d.CreatedAt,
		UpdatedAt:                 d.UpdatedAt,
	}
}

type petDoc struct {
	ID           string    `bson:"_id"`
	CreatedBy    string    `bson:"created_by"`
	Name         string    `bson:"name"`
	PetType      string    `bson:"pet_type"`
	Breed        string    `bson:"breed"`
	Color        string    `bson:"color"`
	Gender       string    `bson:"gender"`
	Size         string    `bson:"size"`
	Age          int       `bson:"age"`
	Description  string    `bson:"description"`
	Location     string    `bson:"location"`
	Images       []string  `bson:"images"`
	Status       string    `bson:"status"`
	IsApproved   bool      `bson:"is_approved"`
	IsVaccinated bool      `bson:"is_vaccinated"`
	IsNeutered   bool      `bson:"is_neutered"`
	SpecialNotes string    `bson:"special_notes"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:           p.ID,
		CreatedBy:    p.CreatedBy,
		Name:         p.Name,
		PetType:      string(p.PetType),
		Breed:        p.Breed,
		Color:        p.Color,
		Gender:       p.Gender,
		Size:         string(p.Size),
		Age:          p.Age,
		Description:  p.Description,
		Location:     p.Location,
		Images:       p.Images,
		Status:       p.Status,
		IsApproved:   p.IsApproved,
		IsVaccinated: p.IsVaccinated,
		IsNeutered:   p.IsNeutered,
		SpecialNotes: p.SpecialNotes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d petDoc) toDomain() pets.Pet {
	return pets.Pet{
		ID:           d.ID,
		CreatedBy:    d.CreatedBy,
		Name:         d.Name,
		PetType:      pets.PetType(d.PetType),
		Breed:        d.Breed,
		Color:        d.Color,
		Gender:       d.Gender,
		Size:         pets.Size(d.Size),
		Age:          d.Age,
		Description:  d.Description,
		Location:     d.Location,
		Images:       d.Images,
		Status:       d.Status,
		IsApproved:   d.IsApproved,
		IsVaccinated: d.IsVaccinated,
		IsNeutered:   d.IsNeutered,
		SpecialNotes: d.SpecialNotes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type reportDoc struct {
	ID            string    `bson:"_id"`
	CreatedBy     string    `bson:"created_by"`
	PetName       string    `bson:"pet_name"`
	PetType       string    `bson:"pet_type"`
	Description   string    `bson:"description"`
	LocationFound string    `bson:"location_found"`
	ContactInfo   string    `bson:"contact_info"`
	Images        []string  `bson:"images"`
	Status        string    `bson:"status"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toReportDoc(r reports.Report) reportDoc {
	return reportDoc{
		ID:            r.ID,
		CreatedBy:     r.CreatedBy,
		PetName:       r.PetName,
		PetType:       string(r.PetType),
		Description:   r.Description,
		LocationFound: r.LocationFound,
		ContactInfo:   r.ContactInfo,
		Images:        r.Images,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (d reportDoc) toDomain() reports.Report {
	return reports.Report{
		ID:            d.ID,
		CreatedBy:     d.CreatedBy,
		PetName:       d.PetName,
		PetType:       reports.PetType(d.PetType),
		Description:   d.Description,
		LocationFound: d.LocationFound,
		ContactInfo:   d.ContactInfo,
		Images:        d.Images,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type adoptionDoc struct {
	ID          string    `bson:"_id"`
	PetID       string    `bson:"pet_id"`
	RequesterID string    `bson:"requester_id"`
	Message     string    `bson:"message"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toAdoptionDoc(a adoptions.Request) adoptionDoc {
	return adoptionDoc(a)
}

func (d adoptionDoc) toDomain() adoptions.Request {
	return adoptions.Request(d)
}

type reviewDoc struct {
	ID        string    `bson:"_id"`
	PetID     string    `bson:"pet_id"`
	UserID    string    `bson:"user_id"`
	Rating    int       `bson:"rating"`
	Comment   string    `bson:"comment"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d reviewDoc) toDomain() reviews.Review {
	return reviews.Review(d)
}

type notificationDoc struct {
	ID              string    `bson:"_id"`
	RecipientID     string    `bson:"recipient_id"`
	RecipientRole   string    `bson:"recipient_role"`
	Title           string    `bson:"title"`
	Message         string    `bson:"message"`
	Type            string    `bson:"type"`
	RelatedEntityID string    `bson:"related_entity_id"`
	IsRead          bool      `bson:"is_read"`
	CreatedAt       time.Time `bson:"created_at"`
}

func toNotificationDoc(n notifications.Notification) notificationDoc {
	return notificationDoc{
		ID:              n.ID,
		RecipientID:     n.RecipientID,
		RecipientRole:   n.RecipientRole,
		Title:           n.Title,
		Message:         n.Message,
		Type:            string(n.Type),
		RelatedEntityID: n.RelatedEntityID,
		IsRead:          n.IsRead,
		CreatedAt:       n.CreatedAt,
	}
}

func (d notificationDoc) toDomain() notifications.Notification {
	return notifications.Notification{
		ID:              d.ID,
		RecipientID:     d.RecipientID,
		RecipientRole:   d.RecipientRole,
		Title:           d.Title,
		Message:         d.Message,
		Type:            notifications.Type(d.Type),
		RelatedEntityID: d.RelatedEntityID,
		IsRead:          d.IsRead,
		CreatedAt:       d.CreatedAt,
	}
}

type matchDoc struct {
	ID           string    `bson:"_id"`
	PetID        string    `bson:"pet_id"`
	RequesterID  string    `bson:"requester_id"`
	RequestType  string    `bson:"request_type"`
	Status       string    `bson:"status"`
	AdminComment string    `bson:"admin_comment"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMatchDoc(m matches.Request) matchDoc {
	return matchDoc{
		ID:           m.ID,
		PetID:        m.PetID,
		RequesterID:  m.RequesterID,
		RequestType:  string(m.RequestType),
		Status:       m.Status,
		AdminComment: m.AdminComment,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (d matchDoc) toDomain() matches.Request {
	return matches.Request{
		ID:           d.ID,
		PetID:        d.PetID,
		RequesterID:  d.RequesterID,
		RequestType:  matches.RequestType(d.RequestType),
		Status:       d.Status,
		AdminComment: d.AdminComment,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type chatDoc struct {
	ID         string    `bson:"_id"`
	SenderID   string    `bson:"sender_id"`
	ReceiverID string    `bson:"receiver_id"`
	Content    string    `bson:"content"`
	IsRead     bool      `bson:"is_read"`
	Timestamp  time.Time `bson:"timestamp"`
}

func (d chatDoc) toDomain() chat.Message {
	return chat.Message(d)
}
