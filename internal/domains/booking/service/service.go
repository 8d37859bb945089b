package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"fmt"
	"salon/config"
	"salon/infras/otel"
	"salon/internal/domains/booking/model"
	"salon/internal/domains/booking/model/dto"
	"salon/internal/domains/booking/repository"
	otpModel "salon/internal/domains/otp/model"
	otpService "salon/internal/domains/otp/service"
	statusModel "salon/internal/domains/status/model"
	statusDto "salon/internal/domains/status/model/dto"
	"salon/internal/events"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/cache"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/metrics"
	"salon/shared/timezone"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking  = "booking:get"
	cacheListBooking = "booking:rows"
)

const scopeAll = "all"

type Booking interface {
	Create(ctx context.Context, actor shared.Actor, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	List(ctx context.Context, actor shared.Actor, params gDto.QueryParams, state pipeline.FilterState) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, actor shared.Actor, id int64) (dto.BookingResponse, error)
	GetOrder(ctx context.Context, actor shared.Actor, bookingNo int64) (dto.OrderResponse, error)
	Update(ctx context.Context, actor shared.Actor, req dto.UpdateBookingRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	AssignArtist(ctx context.Context, actor shared.Actor, req dto.AssignArtistRequest, id int64) error
	ChangeStatus(ctx context.Context, actor shared.Actor, req dto.ChangeStatusRequest, id int64) error
	Cancel(ctx context.Context, actor shared.Actor, id int64) error
	RequestActionOTP(ctx context.Context, actor shared.Actor, id int64, action string) (dto.RequestOTPResponse, error)
	PerformAction(ctx context.Context, actor shared.Actor, id int64, action string, req dto.ActionRequest) error
}

type serviceImpl struct {
	repo     repository.Booking
	artists  Artists
	statuses Statuses
	otp      otpService.OTP
	events   events.Publisher
	reports  events.Evicter
	metrics  *metrics.Metrics
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	artists Artists,
	statuses Statuses,
	otp otpService.OTP,
	publisher events.Publisher,
	reports events.Evicter,
	m *metrics.Metrics,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		artists:  artists,
		statuses: statuses,
		otp:      otp,
		events:   publisher,
		reports:  reports,
		metrics:  m,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func filterByID(id int64) gDto.FilterGroup {
	return shared.FilterByField(model.FieldID, id, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, actor shared.Actor, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.HasNegativePrice() {
		return res, failure.BadRequestFromString("price cannot be negative")
	}

	items := req.ToModels(actor)

	bookingNo, err := s.repo.CreateOrder(ctx, items)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.AddBookingsCreated(len(items))
	s.events.BookingCreated(ctx, events.BookingCreated{
		BookingNo:  bookingNo,
		Items:      len(items),
		CreatedBy:  actor.UserID,
		OccurredAt: timezone.Now(),
	})

	c := context.WithoutCancel(ctx)
	shared.InvalidateCaches(c, s.cache, cacheListBooking)
	s.reports.Evict(c)

	return dto.CreateBookingResponse{BookingNo: bookingNo}, nil
}

// listScope restricts the raw rows an actor may see: staff see everything, members their own
// bookings and artists the bookings assigned to them.
func (s *serviceImpl) listScope(ctx context.Context, actor shared.Actor) (string, gDto.FilterGroup, error) {
	switch {
	case actor.IsStaff():
		return scopeAll, gDto.FilterGroup{}, nil
	case actor.Role == constant.RoleMember:
		return "member:" + actor.UserID, shared.FilterByField(model.FieldMemberID, actor.UserID, model.TableName), nil
	case actor.Role == constant.RoleArtist:
		artist, err := s.artists.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return "", gDto.FilterGroup{}, err
		}

		return "artist:" + strconv.FormatInt(artist.ID, 10), shared.FilterByField(model.FieldArtistID, artist.ID, model.TableName), nil
	default:
		return "", gDto.FilterGroup{}, failure.ResourceRestrictedError
	}
}

func (s *serviceImpl) rows(ctx context.Context, actor shared.Actor) (bookings []model.Booking, err error) {
	key, filter, err := s.listScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	cacheKey := shared.BuildCacheKey(cacheListBooking, key)

	if err = s.cache.Get(ctx, cacheKey, &bookings); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return bookings, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldID, SortDir: gDto.SortDirAsc}

	bookings, err = s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, bookings, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return bookings, nil
}

// List runs the actor's bookings through the list pipeline and returns one page of the result
// together with the filter controls' options.
func (s *serviceImpl) List(ctx context.Context, actor shared.Actor, params gDto.QueryParams, state pipeline.FilterState) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(&err)

	bookings, err := s.rows(ctx, actor)
	if err != nil {
		return res, err
	}

	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return res, err
	}

	p := pipeline.New(s.artists, normalizer)
	p.SetBookings(ctx, dto.ToPipelineList(bookings))
	p.Apply(state)

	derived := p.Result()

	byID := make(map[int64]model.Booking, len(bookings))
	for _, booking := range bookings {
		byID[booking.ID] = booking
	}

	page := paginate(derived, params)

	res.Bookings = make([]dto.BookingResponse, len(page))
	for i, row := range page {
		res.Bookings[i].FromModel(byID[row.ID], p.ArtistName(row.ArtistID), normalizer)
	}

	res.TotalData = len(derived)
	res.TotalPage = shared.CalculateTotalPage(len(derived), params.Limit)
	res.Filters = p.Filters()
	res.ArtistOptions = p.ArtistOptions()
	res.StatusOptions = statusDto.FromOptions(p.StatusOptions(), normalizer)

	return res, nil
}

func paginate(rows []pipeline.Booking, params gDto.QueryParams) []pipeline.Booking {
	if params.Limit <= 0 {
		return rows
	}

	page := max(params.Page, 1)

	start := (page - 1) * params.Limit
	if start >= len(rows) {
		return []pipeline.Booking{}
	}

	return rows[start:min(start+params.Limit, len(rows))]
}

// current reads booking id from the database. Status changes decide on it, never on a cached copy.
func (s *serviceImpl) current(ctx context.Context, id int64) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filterByID(id))
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) load(ctx context.Context, id int64) (booking model.Booking, err error) {
	cacheKey := shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))

	if err = s.cache.Get(ctx, cacheKey, &booking); err == nil {
		return booking, nil
	}

	booking, err = s.current(ctx, id)
	if err != nil {
		return booking, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, booking, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return booking, nil
}

func (s *serviceImpl) authorize(ctx context.Context, actor shared.Actor, booking model.Booking) error {
	switch {
	case actor.IsStaff():
		return nil
	case actor.Role == constant.RoleMember:
		if booking.MemberID != nil && *booking.MemberID == actor.UserID {
			return nil
		}
	case actor.Role == constant.RoleArtist:
		artist, err := s.artists.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return err
		}

		if booking.ArtistID != nil && *booking.ArtistID == artist.ID {
			return nil
		}
	}

	return failure.ResourceRestrictedError
}

func (s *serviceImpl) respond(ctx context.Context, bookings []model.Booking) ([]dto.BookingResponse, error) {
	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return nil, err
	}

	lookup := pipeline.ResolveLookup(ctx, s.artists, dto.ToPipelineList(bookings))

	res := make([]dto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking, lookup.Name(booking.ArtistID), normalizer)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, actor shared.Actor, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorize(ctx, actor, booking); err != nil {
		return res, err
	}

	items, err := s.respond(ctx, []model.Booking{booking})
	if err != nil {
		return res, err
	}

	return items[0], nil
}

// GetOrder returns every line item sharing bookingNo and the order total.
func (s *serviceImpl) GetOrder(ctx context.Context, actor shared.Actor, bookingNo int64) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldID, SortDir: gDto.SortDirAsc}

	bookings, err := s.repo.GetAll(ctx, params, shared.FilterByField(model.FieldBookingNo, bookingNo, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("bookingNo", bookingNo).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if len(bookings) == 0 {
		return res, failure.NotFound("order not found")
	}

	if !actor.IsStaff() {
		allowed := false

		for _, booking := range bookings {
			if s.authorize(ctx, actor, booking) == nil {
				allowed = true

				break
			}
		}

		if !allowed {
			return res, failure.ResourceRestrictedError
		}
	}

	res.Items, err = s.respond(ctx, bookings)
	if err != nil {
		return res, err
	}

	res.BookingNo = bookingNo
	res.Total = decimal.Zero

	for _, booking := range bookings {
		res.Total = res.Total.Add(booking.Total())
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, actor shared.Actor, req dto.UpdateBookingRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := filterByID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor.UserID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := filterByID(id)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// invalidate drops every cached view of booking id, including report summaries, before the write
// returns so the caller's next read sees it.
func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, strconv.FormatInt(id, 10))); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheListBooking)
	s.reports.Evict(c)
}

// transition moves booking to the canonical status to. The write only succeeds while the stored
// status is still the one that was read, so two concurrent changes cannot both win.
func (s *serviceImpl) transition(ctx context.Context, actor shared.Actor, booking model.Booking, from, to statusModel.Code, extra map[string]any) error {
	fields := map[string]any{
		model.FieldStatus:        string(to),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor.UserID,
	}

	for field, value := range extra {
		fields[field] = value
	}

	updated, err := s.repo.UpdateStatus(ctx, booking.ID, booking.Status, fields)
	if err != nil {
		log.Error().Err(err).Int64("id", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if !updated {
		return failure.Conflict("booking was changed by someone else, reload and try again")
	}

	artistID := booking.ArtistID
	if id, ok := extra[model.FieldArtistID].(int64); ok {
		artistID = &id
	}

	log.Info().
		Int64("id", booking.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("actor", actor.UserID).
		Msg("booking status changed")

	s.metrics.IncStatusTransition(string(from), string(to))
	s.events.StatusChanged(ctx, events.StatusChanged{
		BookingID:  booking.ID,
		BookingNo:  booking.BookingNo,
		From:       string(from),
		To:         string(to),
		ArtistID:   artistID,
		ChangedBy:  actor.UserID,
		ActorRole:  actor.Role,
		OccurredAt: timezone.Now(),
	})

	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) AssignArtist(ctx context.Context, actor shared.Actor, req dto.AssignArtistRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignArtist")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !actor.IsStaff() {
		return failure.ForbiddenError
	}

	booking, err := s.current(ctx, id)
	if err != nil {
		return err
	}

	artist, err := s.artists.Get(ctx, req.ArtistID)
	if err != nil {
		return err
	}

	if !artist.Active {
		return failure.BadRequestFromString("artist is not active")
	}

	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return err
	}

	from := normalizer.Normalize(booking.Status)
	if !statusModel.CanTransition(from, statusModel.CodeBeauticianAssigned) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot assign an artist to a %s booking", normalizer.Label(booking.Status)))
	}

	return s.transition(ctx, actor, booking, from, statusModel.CodeBeauticianAssigned, map[string]any{
		model.FieldArtistID: artist.ID,
	})
}

// ChangeStatus applies a staff status change. Only a superadmin may force a move the lifecycle does
// not allow.
func (s *serviceImpl) ChangeStatus(ctx context.Context, actor shared.Actor, req dto.ChangeStatusRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !actor.IsStaff() {
		return failure.ForbiddenError
	}

	if req.Force && !actor.IsSuperAdmin() {
		return failure.Forbidden("only a superadmin can force a status change")
	}

	booking, err := s.current(ctx, id)
	if err != nil {
		return err
	}

	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return err
	}

	if !normalizer.Known(req.Status) {
		return failure.BadRequestFromString(fmt.Sprintf("unknown status %q", req.Status))
	}

	from := normalizer.Normalize(booking.Status)
	to := normalizer.Normalize(req.Status)

	if to == statusModel.CodeBeauticianAssigned && booking.ArtistID == nil {
		return failure.BadRequestFromString("assign an artist instead")
	}

	if !req.Force && !statusModel.CanTransition(from, to) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change status from %s to %s",
			normalizer.Label(booking.Status), normalizer.Label(req.Status)))
	}

	return s.transition(ctx, actor, booking, from, to, nil)
}

// Cancel lets a member cancel their own booking before an artist is assigned; staff may cancel
// wherever the lifecycle allows it.
func (s *serviceImpl) Cancel(ctx context.Context, actor shared.Actor, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !actor.IsStaff() && actor.Role != constant.RoleMember {
		return failure.ForbiddenError
	}

	booking, err := s.current(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, actor, booking); err != nil {
		return err
	}

	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return err
	}

	from := normalizer.Normalize(booking.Status)

	if !actor.IsStaff() && from != statusModel.CodePending && from != statusModel.CodeConfirmed {
		return failure.BadRequestFromString("booking can no longer be cancelled, contact the salon")
	}

	if !statusModel.CanTransition(from, statusModel.CodeCancelled) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot cancel a %s booking", normalizer.Label(booking.Status)))
	}

	return s.transition(ctx, actor, booking, from, statusModel.CodeCancelled, nil)
}

// actionTarget loads a booking for an artist action and checks it is assigned to the calling artist
// and currently offers action.
func (s *serviceImpl) actionTarget(ctx context.Context, actor shared.Actor, id int64, raw string) (model.Booking, statusModel.Action, error) {
	if actor.Role != constant.RoleArtist {
		return model.Booking{}, "", failure.ForbiddenError
	}

	action, ok := statusModel.ParseAction(raw)
	if !ok {
		return model.Booking{}, "", failure.BadRequestFromString(fmt.Sprintf("unknown action %q", raw))
	}

	artist, err := s.artists.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return model.Booking{}, "", err
	}

	booking, err := s.current(ctx, id)
	if err != nil {
		return model.Booking{}, "", err
	}

	if booking.ArtistID == nil || *booking.ArtistID != artist.ID {
		return model.Booking{}, "", failure.Forbidden("booking is not assigned to you")
	}

	normalizer, err := s.statuses.Normalizer(ctx)
	if err != nil {
		return model.Booking{}, "", err
	}

	if normalizer.Normalize(booking.Status) != action.Source() {
		return model.Booking{}, "", failure.BadRequestFromString(fmt.Sprintf("action %s is not available for a %s booking",
			action, normalizer.Label(booking.Status)))
	}

	return booking, action, nil
}

// RequestActionOTP sends the customer a one-time code the artist needs to start or complete the
// service.
func (s *serviceImpl) RequestActionOTP(ctx context.Context, actor shared.Actor, id int64, raw string) (res dto.RequestOTPResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestActionOTP")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, action, err := s.actionTarget(ctx, actor, id, raw)
	if err != nil {
		return res, err
	}

	if !action.RequiresOTP() {
		return res, failure.BadRequestFromString(fmt.Sprintf("action %s does not need an otp", action))
	}

	challenge, err := s.otp.Request(ctx,
		otpModel.Subject{BookingID: booking.ID, Action: string(action)},
		otpModel.Recipient{Name: booking.Name, Email: booking.Email, PhoneNo: booking.PhoneNo},
	)
	if err != nil {
		return res, err
	}

	return dto.RequestOTPResponse{
		Action:      string(action),
		ExpiresAt:   challenge.ExpiresAt,
		Length:      challenge.Length,
		MaxAttempts: challenge.MaxAttempts,
	}, nil
}

func (s *serviceImpl) PerformAction(ctx context.Context, actor shared.Actor, id int64, raw string, req dto.ActionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PerformAction")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, action, err := s.actionTarget(ctx, actor, id, raw)
	if err != nil {
		return err
	}

	subject := otpModel.Subject{BookingID: booking.ID, Action: string(action)}

	if action.RequiresOTP() {
		if req.OTP == constant.Empty {
			return failure.BadRequestFromString("otp is required")
		}

		if err = s.otp.Verify(ctx, subject, req.OTP); err != nil {
			return err
		}
	}

	if err = s.transition(ctx, actor, booking, action.Source(), action.Target(), nil); err != nil {
		return err
	}

	// the code stays usable when the status write loses a race
	if action.RequiresOTP() {
		s.otp.Consume(ctx, subject)
	}

	return nil
}
