package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/appointment-booking/internal/validation"
)

// Step is a stage of the booking workflow.
type Step int

const (
	StepSelectService Step = iota + 1
	StepSelectDateTime
	StepContactInfo
	StepConfirm
)

// String returns the step name used in logs and responses.
func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepSelectDateTime:
		return "select_date_time"
	case StepContactInfo:
		return "contact_info"
	case StepConfirm:
		return "confirm"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// BookingWorkflow walks one customer through selecting a service, a slot and
// contact details before submitting an appointment. A workflow belongs to a
// single customer and is not safe for concurrent use.
type BookingWorkflow struct {
	services     *ServiceCatalog
	appointments *AppointmentBook
	availability *Availability
	now          func() time.Time
	logger       *slog.Logger

	step  Step
	draft BookingDraft
}

// NewBookingWorkflow constructs a workflow positioned at the first step.
func NewBookingWorkflow(services *ServiceCatalog, appointments *AppointmentBook, availability *Availability, now func() time.Time, logger *slog.Logger) *BookingWorkflow {
	if now == nil {
		now = time.Now
	}
	return &BookingWorkflow{
		services:     services,
		appointments: appointments,
		availability: availability,
		now:          now,
		logger:       defaultLogger(logger),
		step:         StepSelectService,
	}
}

func (w *BookingWorkflow) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, w.logger, "BookingWorkflow", operation, attrs...)
}

// Step returns the current step.
func (w *BookingWorkflow) Step() Step { return w.step }

// Draft returns the data collected so far.
func (w *BookingWorkflow) Draft() BookingDraft { return w.draft }

// SelectService chooses the service to book. Changing the service clears the
// selected date and time.
func (w *BookingWorkflow) SelectService(id string) error {
	if _, err := w.bookableService(id); err != nil {
		return err
	}
	if w.draft.ServiceID != id {
		w.draft.Date = ""
		w.draft.TimeSlot = ""
	}
	w.draft.ServiceID = id
	return nil
}

// StartWithService resets the workflow with id preselected and moves straight
// to date and time selection.
func (w *BookingWorkflow) StartWithService(id string) error {
	if _, err := w.bookableService(id); err != nil {
		return err
	}
	w.draft = BookingDraft{ServiceID: id}
	w.step = StepSelectDateTime
	return nil
}

// SelectDate chooses a "YYYY-MM-DD" date. Past dates are rejected and changing
// the date clears the selected time.
func (w *BookingWorkflow) SelectDate(date string) error {
	if err := w.checkDate(date); err != nil {
		return err
	}
	if w.draft.Date != date {
		w.draft.TimeSlot = ""
	}
	w.draft.Date = date
	return nil
}

// SelectTime chooses a start time. It must be an offered, free slot for the
// selected service and date.
func (w *BookingWorkflow) SelectTime(ctx context.Context, timeSlot string) error {
	if w.draft.ServiceID == "" || w.draft.Date == "" {
		return fmt.Errorf("%w: select a service and a date first", ErrStepIncomplete)
	}
	offered, err := w.availability.IsOffered(ctx, w.draft.Date, timeSlot, w.draft.ServiceID)
	if err != nil {
		return err
	}
	if !offered {
		return ErrSlotUnavailable
	}
	w.draft.TimeSlot = timeSlot
	return nil
}

// SetContact records the customer's contact details and notes.
func (w *BookingWorkflow) SetContact(name, email, phone, notes string) {
	w.draft.CustomerName = name
	w.draft.CustomerEmail = email
	w.draft.CustomerPhone = phone
	w.draft.Notes = notes
}

// Next advances one step when the current step is complete. Leaving the
// contact step requires the booking form to validate.
func (w *BookingWorkflow) Next(ctx context.Context) error {
	switch w.step {
	case StepSelectService:
		if w.draft.ServiceID == "" {
			return fmt.Errorf("%w: no service selected", ErrStepIncomplete)
		}
		if _, err := w.bookableService(w.draft.ServiceID); err != nil {
			return err
		}
	case StepSelectDateTime:
		if w.draft.Date == "" || w.draft.TimeSlot == "" {
			return fmt.Errorf("%w: date and time are required", ErrStepIncomplete)
		}
	case StepContactInfo:
		if vErr := newValidationError(validation.ValidateBooking(w.form())); vErr.HasErrors() {
			return vErr
		}
	case StepConfirm:
		return fmt.Errorf("%w: already at the last step", ErrStepIncomplete)
	}

	w.step++
	w.loggerWith(ctx, "Next").DebugContext(ctx, "booking step advanced", "step", w.step.String())
	return nil
}

// Back returns to the previous step. It does nothing at the first step.
func (w *BookingWorkflow) Back() {
	if w.step > StepSelectService {
		w.step--
	}
}

// Submit books the drafted appointment. The slot is checked again because it
// may have been taken since it was selected. On success the workflow starts
// over; on failure the draft is kept.
func (w *BookingWorkflow) Submit(ctx context.Context) (appointment Appointment, err error) {
	logger := w.loggerWith(ctx, "Submit",
		"service_id", w.draft.ServiceID,
		"date", w.draft.Date,
		"time_slot", w.draft.TimeSlot,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit booking", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("appointment_id", appointment.ID).InfoContext(ctx, "booking submitted")
	}()

	if w.step != StepConfirm {
		err = fmt.Errorf("%w: confirm the booking first", ErrStepIncomplete)
		return
	}

	var offered bool
	offered, err = w.availability.IsOffered(ctx, w.draft.Date, w.draft.TimeSlot, w.draft.ServiceID)
	if err != nil {
		return
	}
	if !offered {
		err = ErrSlotUnavailable
		return
	}

	appointment, err = w.appointments.AddAppointment(ctx, Appointment{
		ServiceID:     w.draft.ServiceID,
		Date:          w.draft.Date,
		TimeSlot:      w.draft.TimeSlot,
		CustomerName:  strings.TrimSpace(w.draft.CustomerName),
		CustomerEmail: strings.TrimSpace(w.draft.CustomerEmail),
		CustomerPhone: strings.TrimSpace(w.draft.CustomerPhone),
		Notes:         strings.TrimSpace(w.draft.Notes),
		Status:        StatusPending,
	})
	if err != nil {
		return
	}

	w.draft = BookingDraft{}
	w.step = StepSelectService
	return
}

// Book runs every step over a complete draft and submits it. Form problems,
// including a past date, are reported together as a *ValidationError.
func (w *BookingWorkflow) Book(ctx context.Context, draft BookingDraft) (Appointment, error) {
	vErr := newValidationError(validation.ValidateBooking(formFromDraft(draft)))
	if draft.Date != "" {
		if err := w.checkDate(draft.Date); err != nil {
			vErr.merge(newValidationError([]validation.FieldError{{Field: "date", Message: "Date cannot be in the past"}}))
		}
	}
	if vErr.HasErrors() {
		return Appointment{}, vErr
	}

	if err := w.StartWithService(draft.ServiceID); err != nil {
		return Appointment{}, err
	}
	if err := w.SelectDate(draft.Date); err != nil {
		return Appointment{}, err
	}
	if err := w.SelectTime(ctx, draft.TimeSlot); err != nil {
		return Appointment{}, err
	}
	if err := w.Next(ctx); err != nil {
		return Appointment{}, err
	}
	w.SetContact(draft.CustomerName, draft.CustomerEmail, draft.CustomerPhone, draft.Notes)
	if err := w.Next(ctx); err != nil {
		return Appointment{}, err
	}
	return w.Submit(ctx)
}

func (w *BookingWorkflow) bookableService(id string) (Service, error) {
	service, ok := w.services.ServiceByID(id)
	if !ok || !service.IsActive {
		return Service{}, fmt.Errorf("%w: service %q", ErrNotFound, id)
	}
	return service, nil
}

func (w *BookingWorkflow) checkDate(date string) error {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	today := w.now().Format(time.DateOnly)
	if day.Format(time.DateOnly) < today {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}

func (w *BookingWorkflow) form() validation.BookingForm {
	return formFromDraft(w.draft)
}

func formFromDraft(d BookingDraft) validation.BookingForm {
	return validation.BookingForm{
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		CustomerPhone: d.CustomerPhone,
		ServiceID:     d.ServiceID,
		Date:          d.Date,
		TimeSlot:      d.TimeSlot,
	}
}
