package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/otel"
	"agenda/internal/domains/booking/model"
	"agenda/internal/domains/booking/model/dto"
	"agenda/internal/domains/booking/repository"
	"agenda/internal/domains/booking/schedule"
	catalogModel "agenda/internal/domains/catalog/model"
	catalogRepo "agenda/internal/domains/catalog/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheBookingSlots      = "booking:slots"
	cacheBookingGeneration = "booking:generation"
	initialGeneration      = "0"

	// generationTTL must outlive any slot snapshot stored under a generation.
	generationTTL = 7 * 24 * 60 * 60

	fullDay = 24 * time.Hour
)

var sortableColumns = map[string]string{
	"start":      "bookings.start_time",
	"created_at": "bookings.created_at",
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (dto.BookingResponse, error)
	Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.ListBookingsRequest) (dto.GetBookingsResponse, error)
	ListAvailableSlots(ctx context.Context, serviceID, date string) (dto.AvailableSlotsResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	catalogRepo catalogRepo.Catalog
	cfg         *config.Config
	cache       cache.RedisCache
	kafka       kafka.Client
	otel        otel.Otel
	hours       schedule.WorkingHours
}

func New(repo repository.Booking, catalogRepo catalogRepo.Catalog, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Booking {
	hours, err := schedule.ParseWorkingHours(cfg.Schedule.WorkStart, cfg.Schedule.WorkEnd, cfg.Schedule.GranularityMinutes)
	if err != nil {
		log.Warn().Err(err).Msg("invalid working hours configuration, using defaults")

		hours = schedule.DefaultWorkingHours
	}

	return &serviceImpl{
		repo:        repo,
		catalogRepo: catalogRepo,
		cfg:         cfg,
		cache:       cache,
		kafka:       kafka,
		otel:        otel,
		hours:       hours,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.PrincipalFromContext(ctx)

	start, err := req.StartTime()
	if err != nil {
		return res, err
	}

	offering, err := s.offering(ctx, req.ServiceID, true)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if start.Before(now) {
		return res, model.ErrPastStart
	}

	if offering.Duration <= 0 {
		return res, model.ErrZeroDuration
	}

	booking := model.New(actor.ID, offering, start, now)

	existing, err := s.scheduled(ctx, booking.ProfessionalID, booking.StartTime, booking.EndTime)
	if err != nil {
		return res, err
	}

	if schedule.ConflictsWithExisting(existing, booking.ProfessionalID, booking.StartTime, booking.EndTime, constant.Empty) {
		return res, s.rejection(existing, booking, now)
	}

	if err = s.repo.InsertExclusive(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			log.Warn().Str("professional", booking.ProfessionalID).Msg("booking slot taken by a concurrent request")

			return res, s.freshRejection(ctx, booking, now)
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx, booking.ProfessionalID)
	s.publish(ctx, model.EventCreated, booking, actor.ID, now)

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.CancelBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.PrincipalFromContext(ctx)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if err = ensureMutable(actor, booking, now); err != nil {
		return res, err
	}

	booking.Status = model.StatusCancelled
	booking.CancellationReason = &req.Reason
	booking.CancelledBy = &actor.ID

	updatedFields := shared.TransformFields(dto.CancelFields{
		Status:             booking.Status,
		CancellationReason: booking.CancellationReason,
		CancelledBy:        booking.CancelledBy,
	}, actor.ID)

	if err = s.repo.Cancel(ctx, booking.ID, now, updatedFields); err != nil {
		if errors.Is(err, repository.ErrNotScheduled) {
			return res, s.staleState(ctx, id, now)
		}

		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.ModifiedAt = now
	booking.ModifiedBy = actor.ID

	s.invalidate(ctx, booking.ProfessionalID)
	s.publish(ctx, model.EventCancelled, booking, actor.ID, now)

	res.FromModel(booking, now)

	return res, nil
}

// Reschedule moves a scheduled booking to a new start, keeping its service and client.
func (s *serviceImpl) Reschedule(ctx context.Context, id string, req dto.RescheduleBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.PrincipalFromContext(ctx)

	start, err := req.StartTime()
	if err != nil {
		return res, err
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if err = ensureMutable(actor, booking, now); err != nil {
		return res, err
	}

	if start.Before(now) {
		return res, model.ErrPastStart
	}

	offering, err := s.offering(ctx, booking.ServiceID, false)
	if err != nil {
		return res, err
	}

	if offering.Duration <= 0 {
		return res, model.ErrZeroDuration
	}

	booking.Schedule(offering, start)

	existing, err := s.scheduled(ctx, booking.ProfessionalID, booking.StartTime, booking.EndTime)
	if err != nil {
		return res, err
	}

	if schedule.ConflictsWithExisting(existing, booking.ProfessionalID, booking.StartTime, booking.EndTime, booking.ID) {
		return res, s.rejection(without(existing, booking.ID), booking, now)
	}

	updatedFields := shared.TransformFields(dto.RescheduleFields{StartTime: booking.StartTime, EndTime: booking.EndTime}, actor.ID)

	if err = s.repo.Reschedule(ctx, booking, now, updatedFields); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return res, s.freshRejection(ctx, booking, now)
		case errors.Is(err, repository.ErrNotScheduled):
			return res, s.staleState(ctx, id, now)
		}

		log.Error().Err(err).Msg("failed to reschedule booking")

		return res, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	booking.ModifiedAt = now
	booking.ModifiedBy = actor.ID

	s.invalidate(ctx, booking.ProfessionalID)
	s.publish(ctx, model.EventRescheduled, booking, actor.ID, now)

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanManage(shared.PrincipalFromContext(ctx), booking) {
		return res, model.ErrForbidden
	}

	res.FromModel(booking, timezone.Now())

	return res, nil
}

// GetAll lists the bookings the caller may see: clients their own, professionals those of
// their services and admins every booking.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.ListBookingsRequest) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	filter := visibilityFilter(shared.PrincipalFromContext(ctx), req, now)

	sortDir := gDto.SortDirDesc
	if req.Scope == constant.ScopeUpcoming {
		sortDir = gDto.SortDirAsc
	}

	if params.SortDir == constant.Empty {
		params.SortDir = sortDir
	}

	params.RestrictSort(sortableColumns, sortableColumns["start"])

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit, now)

	return res, nil
}

// ListAvailableSlots returns the free start times of a service on a calendar day.
func (s *serviceImpl) ListAvailableSlots(ctx context.Context, serviceID, date string) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAvailableSlots")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	day, err := timezone.Parse(constant.DayFormat, date)
	if err != nil {
		return res, model.ErrInvalidDate
	}

	offering, err := s.offering(ctx, serviceID, true)
	if err != nil {
		return res, err
	}

	if offering.Duration <= 0 {
		return res, model.ErrZeroDuration
	}

	existing, err := s.daySnapshot(ctx, offering.ProfessionalID, day)
	if err != nil {
		return res, err
	}

	slots := schedule.AvailableSlots(existing, offering, day, s.hours, timezone.Now())
	res.FromSlots(serviceID, date, offering.Duration, slots)

	return res, nil
}

// find always reads the stored row. Lifecycle checks must never run on a cached copy.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return model.Booking{}, model.ErrNotFound
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(parsed.String(), model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

// staleState explains why a conditional update matched no row by re-reading the booking.
func (s *serviceImpl) staleState(ctx context.Context, id string, now time.Time) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == model.StatusScheduled && current.StartTime.Before(now) {
		return model.ErrAlreadyOccurred
	}

	return model.ErrAlreadyCancelled
}

func (s *serviceImpl) offering(ctx context.Context, serviceID string, requireActive bool) (model.Offering, error) {
	service, err := s.catalogRepo.Get(ctx, shared.FilterByID(serviceID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return model.Offering{}, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty || (requireActive && !service.Active) {
		return model.Offering{}, model.ErrServiceNotFound
	}

	return model.Offering{
		ServiceID:      service.ID,
		ServiceName:    service.Name,
		ProfessionalID: service.ProfessionalID,
		Duration:       time.Duration(service.DurationMinutes) * time.Minute,
	}, nil
}

// scheduled reads a fresh snapshot of the professional's bookings around [start, end).
// The window spans the whole working day so the advisor can search forward.
func (s *serviceImpl) scheduled(ctx context.Context, professionalID string, start, end time.Time) ([]model.Booking, error) {
	from := schedule.StartOfDay(start)

	to := from.Add(fullDay)
	if end.After(to) {
		to = end
	}

	bookings, err := s.repo.ListScheduled(ctx, professionalID, from, to)
	if err != nil {
		log.Error().Err(err).Msg("failed to list scheduled bookings")

		return nil, fmt.Errorf("failed to list scheduled bookings: %w", err)
	}

	return bookings, nil
}

// daySnapshot is the cached variant of scheduled used by the read only slot listing.
// Snapshots are keyed by the professional's calendar generation, so one saved from a read
// that raced a write is never served after that write bumped the generation.
func (s *serviceImpl) daySnapshot(ctx context.Context, professionalID string, day time.Time) ([]model.Booking, error) {
	cacheKey := slotCacheKey(professionalID, s.generation(ctx, professionalID), day)

	var bookings []model.Booking
	if err := s.cache.Get(ctx, cacheKey, &bookings); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking snapshot")

		return bookings, nil
	}

	from := schedule.StartOfDay(day)

	bookings, err := s.scheduled(ctx, professionalID, from, from.Add(fullDay))
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(ctx, cacheKey, bookings, s.cfg.Schedule.SlotCacheTTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking snapshot to cache")
	}

	return bookings, nil
}

func (s *serviceImpl) generation(ctx context.Context, professionalID string) string {
	var generation string
	if err := s.cache.Get(ctx, shared.BuildCacheKey(cacheBookingGeneration, professionalID), &generation); err != nil || generation == constant.Empty {
		return initialGeneration
	}

	return generation
}

func (s *serviceImpl) rejection(existing []model.Booking, booking model.Booking, now time.Time) error {
	_, workEnd := s.hours.Window(booking.StartTime)

	result := schedule.SuggestNext(existing, booking.ProfessionalID, booking.StartTime, booking.Duration(), workEnd, now)
	if !result.Found {
		return model.ErrNoAvailability
	}

	return model.NewSlotTakenError(result.Start)
}

// freshRejection re-reads the calendar after a lost write race so the suggestion reflects the winner.
func (s *serviceImpl) freshRejection(ctx context.Context, booking model.Booking, now time.Time) error {
	existing, err := s.scheduled(ctx, booking.ProfessionalID, booking.StartTime, booking.EndTime)
	if err != nil {
		return model.ErrSlotTaken
	}

	return s.rejection(without(existing, booking.ID), booking, now)
}

// invalidate starts a new calendar generation once a write has committed.
func (s *serviceImpl) invalidate(ctx context.Context, professionalID string) {
	key := shared.BuildCacheKey(cacheBookingGeneration, professionalID)

	if err := s.cache.Save(context.WithoutCancel(ctx), key, uuid.NewString(), generationTTL); err != nil {
		log.Error().Err(err).Str("professional", professionalID).Msg("failed to bump booking calendar generation")
	}
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, actor string, now time.Time) {
	event := model.NewEvent(eventType, booking, actor, now)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic.Booking, kafka.Message{Key: booking.ProfessionalID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Str("booking", booking.ID).Msg("failed to publish booking event")
	}
}

func ensureMutable(actor gModel.Principal, booking model.Booking, now time.Time) error {
	if !model.CanManage(actor, booking) {
		return model.ErrForbidden
	}

	if booking.Status == model.StatusCancelled {
		return model.ErrAlreadyCancelled
	}

	if booking.StartTime.Before(now) {
		return model.ErrAlreadyOccurred
	}

	return nil
}

func visibilityFilter(actor gModel.Principal, req dto.ListBookingsRequest, now time.Time) gDto.FilterGroup {
	filters := []any{}

	switch {
	case actor.IsAdmin():
	case actor.IsProfessional():
		filters = append(filters, gDto.Filter{Field: model.FieldProfessionalID, Value: actor.ID, Operator: gDto.FilterOperatorEq, Table: model.ServiceTableName})
	default:
		filters = append(filters, gDto.Filter{Field: model.FieldClientID, Value: actor.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	switch req.Scope {
	case constant.ScopeUpcoming:
		filters = append(filters, gDto.Filter{ArgName: "scope_now", Field: model.FieldStartTime, Value: now, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	case constant.ScopePast:
		filters = append(filters, gDto.Filter{ArgName: "scope_now", Field: model.FieldStartTime, Value: now, Operator: gDto.FilterOperatorLess, Table: model.TableName})
	}

	switch req.Status {
	case model.StatusCancelled:
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: model.StatusCancelled, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	case model.StatusScheduled:
		filters = append(filters,
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusScheduled, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "status_now", Field: model.FieldEndTime, Value: now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
		)
	case model.StatusCompleted:
		filters = append(filters,
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusScheduled, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "status_now", Field: model.FieldEndTime, Value: now, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		)
	}

	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: filters}
}

func without(bookings []model.Booking, id string) []model.Booking {
	kept := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if booking.ID != id {
			kept = append(kept, booking)
		}
	}

	return kept
}

func slotCacheKey(professionalID, generation string, day time.Time) string {
	return shared.BuildCacheKey(cacheBookingSlots, professionalID, generation, timezone.Format(day, constant.DayFormat))
}
