// Package http exposes the booking application over a JSON HTTP API.
//
// Public endpoints:
//   - GET /services: active services, narrowed by ?category=. Admins may pass
//     ?all=true to include inactive ones. GET /services/{id} returns one service.
//   - GET /categories: distinct categories of the active services.
//   - GET /availability?serviceId=&date=YYYY-MM-DD: the day's slots as
//     {"time","available"} pairs. Closed days yield an empty list.
//   - POST /bookings: runs the booking workflow for a complete draft
//     {"serviceId","date","timeSlot","customerName","customerEmail","customerPhone","notes"}
//     and answers 201 with the pending appointment, 422 with field errors or
//     409 when the slot was taken meanwhile.
//   - GET /appointments?email=: the customer's bookings, newest first.
//   - POST /appointments/{id}/cancel: body {"email"}; the email must match the booking.
//
// Administrator endpoints (401 until POST /admin/login succeeds):
//   - POST /admin/login with {"password"}, POST /admin/logout.
//   - POST /services, PUT /services/{id}, DELETE /services/{id},
//     POST /services/{id}/toggle.
//   - GET /admin/appointments?q=&status=, PUT /admin/appointments/{id}/status
//     with {"status"}, DELETE /admin/appointments/{id}.
//   - GET /admin/dashboard: booking statistics.
//
// The admin session is a single process-wide flag, not a per-client session.
// After one successful login every client reaches the administrator endpoints
// until POST /admin/logout.
//
// Request and response payloads live alongside their handlers.
package http
