package contact

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/transfer-booking-backend/internal/lifecycle"
	"github.com/nekogravitycat/transfer-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound               = apperror.New(http.StatusNotFound, apperror.KindNotFound, "contact message not found")
	ErrInvalidEmail           = apperror.Invalid("email", "must be a valid email address")
	ErrUnknownServiceInterest = apperror.Invalid("serviceInterest", "is not an offered service")
	ErrInvalidStatus          = apperror.Invalid("status", "must be one of: new contacted resolved closed")
)

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusResolved  Status = "resolved"
	StatusClosed    Status = "closed"
)

// Message is an enquiry sent through the contact form.
type Message struct {
	ID              string
	Name            string
	Email           string
	Phone           *string
	ServiceInterest string
	Message         string
	Status          Status
	CreatedAt       time.Time
}

type Filter struct {
	Status   Status
	Page     int
	PageSize int
}

// Schema plugs Message into the generic lifecycle store. Messages carry no updatedAt.
var Schema = lifecycle.Schema[Message, Status]{
	Entity:   "contact message",
	Initial:  StatusNew,
	Statuses: []Status{StatusNew, StatusContacted, StatusResolved, StatusClosed},
	Transitions: map[Status][]Status{
		StatusNew:       {StatusContacted, StatusClosed},
		StatusContacted: {StatusResolved, StatusClosed},
		StatusResolved:  {StatusClosed},
	},
	NotFound: ErrNotFound,
	ID:       func(m Message) string { return m.ID },
	Status:   func(m Message) Status { return m.Status },
	Stamp: func(m *Message, id string, status Status, now time.Time) {
		m.ID = id
		m.Status = status
		m.CreatedAt = now
	},
	SetStatus: func(m *Message, status Status, _ time.Time) {
		m.Status = status
	},
}
