package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/appointment-booking/internal/application"
	"github.com/example/appointment-booking/internal/availability"
)

var (
	serviceCounter     uint64
	appointmentCounter uint64
)

var referenceTime = time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

// Calendar dates relative to ReferenceTime, a Friday.
const (
	SaturdayDate = "2024-03-02"
	SundayDate   = "2024-03-03"
	MondayDate   = "2024-03-04"
	PastDate     = "2024-02-28"
)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Service fixtures ----------------------------

// ServiceFixture represents a deterministic catalog entry.
type ServiceFixture struct {
	ID          string
	Name        string
	Description string
	Duration    int
	Price       float64
	Category    string
	IsActive    bool
}

// ServiceOption configures the generated service fixture.
type ServiceOption func(*ServiceFixture)

// NewServiceFixture returns an active 30 minute service with optional overrides.
func NewServiceFixture(opts ...ServiceOption) ServiceFixture {
	idx := atomic.AddUint64(&serviceCounter, 1)
	fixture := ServiceFixture{
		ID:          fmt.Sprintf("service-fixture-%03d", idx),
		Name:        fmt.Sprintf("Service %03d", idx),
		Description: fmt.Sprintf("Description of service %03d", idx),
		Duration:    30,
		Price:       40,
		Category:    "General",
		IsActive:    true,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithServiceID overrides the generated service ID.
func WithServiceID(id string) ServiceOption {
	return func(f *ServiceFixture) {
		f.ID = id
	}
}

// WithServiceName overrides the generated name.
func WithServiceName(name string) ServiceOption {
	return func(f *ServiceFixture) {
		f.Name = name
	}
}

// WithServiceDuration overrides the duration in minutes.
func WithServiceDuration(minutes int) ServiceOption {
	return func(f *ServiceFixture) {
		f.Duration = minutes
	}
}

// WithServicePrice overrides the price.
func WithServicePrice(price float64) ServiceOption {
	return func(f *ServiceFixture) {
		f.Price = price
	}
}

// WithServiceCategory overrides the category.
func WithServiceCategory(category string) ServiceOption {
	return func(f *ServiceFixture) {
		f.Category = category
	}
}

// WithServiceInactive marks the service as not bookable.
func WithServiceInactive() ServiceOption {
	return func(f *ServiceFixture) {
		f.IsActive = false
	}
}

// Application converts the fixture into an application service.
func (f ServiceFixture) Application() application.Service {
	return application.Service{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Duration:    f.Duration,
		Price:       f.Price,
		Category:    f.Category,
		IsActive:    f.IsActive,
	}
}

// Input converts the fixture into the fields an administrator submits.
func (f ServiceFixture) Input() application.ServiceInput {
	return application.ServiceInput{
		Name:        f.Name,
		Description: f.Description,
		Duration:    f.Duration,
		Price:       f.Price,
		Category:    f.Category,
		IsActive:    f.IsActive,
	}
}

// -------------------------- Appointment fixtures --------------------------

// AppointmentFixture represents a deterministic appointment.
type AppointmentFixture struct {
	ID            string
	ServiceID     string
	Date          string
	TimeSlot      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	Status        application.AppointmentStatus
	CreatedAt     time.Time
}

// AppointmentOption configures the generated appointment fixture.
type AppointmentOption func(*AppointmentFixture)

// NewAppointmentFixture returns a pending Monday morning Haircut booking with
// optional overrides.
func NewAppointmentFixture(opts ...AppointmentOption) AppointmentFixture {
	idx := atomic.AddUint64(&appointmentCounter, 1)
	fixture := AppointmentFixture{
		ID:            fmt.Sprintf("apt-fixture-%03d", idx),
		ServiceID:     "service-1",
		Date:          MondayDate,
		TimeSlot:      "09:00",
		CustomerName:  fmt.Sprintf("Customer %03d", idx),
		CustomerEmail: fmt.Sprintf("customer-%03d@example.com", idx),
		CustomerPhone: "555-123-4567",
		Status:        application.StatusPending,
		CreatedAt:     referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAppointmentID overrides the generated appointment ID.
func WithAppointmentID(id string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ID = id
	}
}

// WithAppointmentService overrides the booked service.
func WithAppointmentService(serviceID string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.ServiceID = serviceID
	}
}

// WithAppointmentSlot overrides the booked date and start time.
func WithAppointmentSlot(date, timeSlot string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Date = date
		f.TimeSlot = timeSlot
	}
}

// WithAppointmentCustomer overrides the customer's contact details.
func WithAppointmentCustomer(name, email, phone string) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.CustomerName = name
		f.CustomerEmail = email
		f.CustomerPhone = phone
	}
}

// WithAppointmentStatus overrides the lifecycle status.
func WithAppointmentStatus(status application.AppointmentStatus) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.Status = status
	}
}

// WithAppointmentCreatedAt overrides the creation time.
func WithAppointmentCreatedAt(t time.Time) AppointmentOption {
	return func(f *AppointmentFixture) {
		f.CreatedAt = t
	}
}

// Application converts the fixture into an application appointment.
func (f AppointmentFixture) Application() application.Appointment {
	return application.Appointment{
		ID:            f.ID,
		ServiceID:     f.ServiceID,
		Date:          f.Date,
		TimeSlot:      f.TimeSlot,
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		CustomerPhone: f.CustomerPhone,
		Notes:         f.Notes,
		Status:        f.Status,
		CreatedAt:     f.CreatedAt,
	}
}

// Draft converts the fixture into a booking draft.
func (f AppointmentFixture) Draft() application.BookingDraft {
	return application.BookingDraft{
		ServiceID:     f.ServiceID,
		Date:          f.Date,
		TimeSlot:      f.TimeSlot,
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		CustomerPhone: f.CustomerPhone,
		Notes:         f.Notes,
	}
}

// Reservation converts the fixture into the slot it occupies.
func (f AppointmentFixture) Reservation() availability.Reservation {
	return availability.Reservation{
		Date:      f.Date,
		TimeSlot:  f.TimeSlot,
		ServiceID: f.ServiceID,
		Cancelled: f.Status == application.StatusCancelled,
	}
}
