package booking

import (
	"agenda/infras/otel"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/service"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const queryStatus = "status"

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/slots", handler.GetAvailableSlots)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/cancel", handler.CancelBooking)
		routerGroup.Patch("/{id}/reschedule", handler.RescheduleBooking)
	})
}

// GetAvailableSlots lists the free start times of a service on a day.
// @Summary List available slots
// @Description Start times ("HH:MM") at which the service fits within working hours without overlapping scheduled bookings.
// @Tags Booking
// @Produce json
// @Param service_id query string true "Service ID"
// @Param date query string true "Day, YYYY-MM-DD"
// @Success 200 {object} response.Data[dto.AvailableSlotsResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/slots [get]
func (handler *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	serviceID := r.URL.Query().Get(constant.RequestParamServiceID)
	if err := validator.ValidateVar(serviceID, constant.RequestParamServiceID, "required,uuid"); err != nil {
		response.Fail(w, scope, err, "invalid request")

		return
	}

	slots, err := handler.service.ListAvailableSlots(ctx, serviceID, r.URL.Query().Get(constant.RequestParamDate))
	if err != nil {
		response.Fail(w, scope, err, "failed to list available slots")

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// CreateBooking books a service for the calling client.
// @Summary Create a booking
// @Description Books the service at the requested start. On overlap the response is 409 SLOT_TAKEN with details.suggested_start, or 409 NO_AVAILABILITY when nothing is left that day.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(writer, scope, err, "failed to create booking")

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetBookings lists the bookings visible to the caller.
// @Summary List my bookings
// @Description Clients see their bookings, professionals the bookings of their services, admins all of them.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param scope query string false "upcoming or past"
// @Param status query string false "SCHEDULED, COMPLETED or CANCELLED"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	req := dto.ListBookingsRequest{
		Scope:  r.URL.Query().Get(constant.RequestParamScope),
		Status: r.URL.Query().Get(queryStatus),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		response.Fail(w, scope, err, "invalid request")

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, req)
	if err != nil {
		response.Fail(w, scope, err, "failed to get bookings")

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID returns a booking the caller takes part in.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.Fail(w, scope, err, "failed to get booking by ID")

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// CancelBooking cancels a scheduled booking that has not started.
// @Summary Cancel a booking
// @Description Allowed for the booking's client, the service's professional and admins.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CancelBookingRequest true "Cancellation"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	req := dto.CancelBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		response.Fail(w, scope, err, "failed to cancel booking")

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// RescheduleBooking moves a scheduled booking to a new start.
// @Summary Reschedule a booking
// @Description The new interval is checked against other bookings, ignoring the booking itself.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RescheduleBookingRequest true "New start"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reschedule [patch]
// @Security BearerAuth
func (handler *Handler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleBooking")
	defer scope.End()

	req := dto.RescheduleBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.Fail(w, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.Reschedule(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		response.Fail(w, scope, err, "failed to reschedule booking")

		return
	}

	scope.AddEvent("Booking rescheduled successfully")

	response.WithJSON(w, http.StatusOK, booking)
}
