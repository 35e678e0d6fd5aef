package application

import (
	"time"

	"github.com/example/appointment-booking/internal/availability"
)

// Service is a bookable offering in the catalog.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"isActive"`
}

// RecordID implements persistence.Record.
func (s Service) RecordID() string { return s.ID }

// WithRecordID implements persistence.Record.
func (s Service) WithRecordID(id string) Service {
	s.ID = id
	return s
}

// ServiceInput captures the fields an administrator provides for a new service.
type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"isActive"`
}

// ServicePatch holds a partial service update. Nil fields are left unchanged.
type ServicePatch struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

func (p ServicePatch) apply(s Service) Service {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return s
}

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an appointment in status s may move to next.
// Pending may be confirmed or cancelled, confirmed may be cancelled and
// cancelled is terminal. Keeping the current status is always allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	}
	return false
}

// Appointment is a customer's reservation of one time slot for one service.
type Appointment struct {
	ID            string            `json:"id"`
	ServiceID     string            `json:"serviceId"`
	Date          string            `json:"date"`
	TimeSlot      string            `json:"timeSlot"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Notes         string            `json:"notes"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// RecordID implements persistence.Record.
func (a Appointment) RecordID() string { return a.ID }

// WithRecordID implements persistence.Record.
func (a Appointment) WithRecordID(id string) Appointment {
	a.ID = id
	return a
}

func (a Appointment) reservation() availability.Reservation {
	return availability.Reservation{
		Date:      a.Date,
		TimeSlot:  a.TimeSlot,
		ServiceID: a.ServiceID,
		Cancelled: a.Status == StatusCancelled,
	}
}

// AppointmentPatch holds a partial appointment update. Nil fields are left unchanged.
type AppointmentPatch struct {
	Date          *string            `json:"date,omitempty"`
	TimeSlot      *string            `json:"timeSlot,omitempty"`
	CustomerName  *string            `json:"customerName,omitempty"`
	CustomerEmail *string            `json:"customerEmail,omitempty"`
	CustomerPhone *string            `json:"customerPhone,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Status        *AppointmentStatus `json:"status,omitempty"`
}

func (p AppointmentPatch) apply(a Appointment) Appointment {
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.TimeSlot != nil {
		a.TimeSlot = *p.TimeSlot
	}
	if p.CustomerName != nil {
		a.CustomerName = *p.CustomerName
	}
	if p.CustomerEmail != nil {
		a.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerPhone != nil {
		a.CustomerPhone = *p.CustomerPhone
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	return a
}

// BusinessHours is the opening window of one weekday, 0 being Sunday.
type BusinessHours = availability.Hours

// BookingDraft is the data collected across the booking workflow steps.
type BookingDraft struct {
	ServiceID     string `json:"serviceId"`
	Date          string `json:"date"`
	TimeSlot      string `json:"timeSlot"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`
}

// Statistics summarises bookings for the admin dashboard.
type Statistics struct {
	TotalBookings      int           `json:"totalBookings"`
	ConfirmedBookings  int           `json:"confirmedBookings"`
	PendingBookings    int           `json:"pendingBookings"`
	TotalRevenue       float64       `json:"totalRevenue"`
	PopularService     string        `json:"popularService"`
	RecentAppointments []Appointment `json:"recentAppointments"`
}
