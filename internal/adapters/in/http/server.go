package http

import (
	"context"
	"log/slog"
	"net/http"

	"printdesk/internal/adapters/out/live"
	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/application/usecases/queries"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Use-case handlers the server calls. The command and query handler structs
// satisfy them.
type (
	ClaimOrderHandler interface {
		Handle(ctx context.Context, command commands.ClaimOrderCommand) (order.Snapshot, error)
	}
	UnclaimOrderHandler interface {
		Handle(ctx context.Context, command commands.UnclaimOrderCommand) (order.Snapshot, error)
	}
	AssignStaffHandler interface {
		Handle(ctx context.Context, command commands.AssignStaffCommand) (commands.AssignStaffResult, error)
	}
	UpdateStatusHandler interface {
		Handle(ctx context.Context, command commands.UpdateStatusCommand) (order.Snapshot, error)
	}
	UpdatePriceHandler interface {
		Handle(ctx context.Context, command commands.UpdatePriceCommand) (order.Snapshot, error)
	}
	UpdateNotesHandler interface {
		Handle(ctx context.Context, command commands.UpdateNotesCommand) (order.Snapshot, error)
	}
	RegisterSubscriptionHandler interface {
		Handle(ctx context.Context, command commands.RegisterSubscriptionCommand) (kernel.UUID, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersSinceQuery) ([]order.Snapshot, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (order.Snapshot, error)
	}
	// LiveStream is implemented by *live.Hub.
	LiveStream interface {
		Stream(ctx context.Context, w http.ResponseWriter, staff kernel.StaffID, opts live.StreamOptions) error
	}
)

// Handlers groups everything Server dispatches to.
type Handlers struct {
	ClaimOrder           ClaimOrderHandler
	UnclaimOrder         UnclaimOrderHandler
	AssignStaff          AssignStaffHandler
	UpdateStatus         UpdateStatusHandler
	UpdatePrice          UpdatePriceHandler
	UpdateNotes          UpdateNotesHandler
	RegisterSubscription RegisterSubscriptionHandler
	ListOrders           ListOrdersHandler
	GetOrder             GetOrderHandler
}

// Server implements servers.ServerInterface. Every route runs behind
// JWTAuth, so the acting staff member always comes from the token.
type Server struct {
	handlers   Handlers
	stream     LiveStream
	streamOpts live.StreamOptions
	logger     *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, stream LiveStream, streamOpts live.StreamOptions, logger *slog.Logger) *Server {
	return &Server{
		handlers:   handlers,
		stream:     stream,
		streamOpts: streamOpts,
		logger:     logger.With("component", "http_server"),
	}
}

// ClaimOrder handles POST /api/v1/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	var body servers.ClaimOrderJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewClaimOrderCommand(body.OrderId, staff.String())
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.ClaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// UnclaimOrder handles POST /api/v1/unclaim.
func (s *Server) UnclaimOrder(ctx echo.Context) error {
	var body servers.UnclaimOrderJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnclaimOrderCommand(body.OrderId, staff.String())
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.UnclaimOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// AssignStaff handles POST /api/v1/assign-staff.
func (s *Server) AssignStaff(ctx echo.Context) error {
	var body servers.AssignStaffJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignStaffCommand(body.OrderId, staff.String(), body.StaffIds)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	result, err := s.handlers.AssignStaff.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.AssignStaffResponse{
		Order:    toOrder(result.Order),
		Metadata: toStaffMetadata(result.Metadata),
	})
}

// UpdateStatus handles POST /api/v1/update-status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	var body servers.UpdateStatusJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateStatusCommand(body.OrderId, staff.String(), body.Status)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.UpdateStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// UpdatePrice handles POST /api/v1/update-price.
func (s *Server) UpdatePrice(ctx echo.Context) error {
	var body servers.UpdatePriceJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdatePriceCommand(body.OrderId, staff.String(), body.EstimatedPrice, body.AssignedPrice)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.UpdatePrice.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// UpdateNotes handles POST /api/v1/update-notes.
func (s *Server) UpdateNotes(ctx echo.Context) error {
	var body servers.UpdateNotesJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateNotesCommand(body.OrderId, staff.String(), body.StaffNotes)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.UpdateNotes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	snapshots, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), queries.NewGetOrdersSinceQuery(params.Since))
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	response := servers.OrderList{Orders: make([]servers.Order, len(snapshots))}
	for i, snapshot := range snapshots {
		response.Orders[i] = toOrder(snapshot)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId string) error {
	query, err := queries.NewGetOrderQuery(orderId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	snapshot, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, servers.OrderResponse{Order: toOrder(snapshot)})
}

// RegisterSubscription handles POST /api/v1/subscriptions.
func (s *Server) RegisterSubscription(ctx echo.Context) error {
	var body servers.RegisterSubscriptionJSONRequestBody
	staff, err := s.bindAs(ctx, &body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterSubscriptionCommand(staff.String(), body.Endpoint, body.Keys.P256dh, body.Keys.Auth)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	id, err := s.handlers.RegisterSubscription.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusCreated, servers.SubscriptionCreated{Id: id.Bytes()})
}

// GetEvents handles GET /api/v1/events. It holds the request open until the
// client goes away.
func (s *Server) GetEvents(ctx echo.Context, _ servers.GetEventsParams) error {
	staff, err := staffFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, "Missing bearer token")
	}

	if err = s.stream.Stream(ctx.Request().Context(), ctx.Response(), staff, s.streamOpts); err != nil {
		s.logger.DebugContext(ctx.Request().Context(), "Event stream ended", "staff_id", staff.String(), "error", err)
	}
	return nil
}

// WhoAmI handles GET /api/v1/whoami.
func (s *Server) WhoAmI(ctx echo.Context) error {
	staff, err := staffFromContext(ctx)
	if err != nil {
		return unauthorized(ctx, "Missing bearer token")
	}
	return ctx.JSON(http.StatusOK, servers.WhoAmI{StaffId: staff.String()})
}

// bindAs decodes the body and returns the authenticated staff member.
// Failures are rendered by errorHandler.
func (s *Server) bindAs(ctx echo.Context, body any) (kernel.StaffID, error) {
	staff, err := staffFromContext(ctx)
	if err != nil {
		return "", echo.ErrUnauthorized
	}
	if err = ctx.Bind(body); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return staff, nil
}

func toOrder(s order.Snapshot) servers.Order {
	return servers.Order{
		Id:                s.ID,
		Status:            servers.OrderStatus(s.Status.String()),
		ClaimedBy:         s.ClaimedBy,
		AssignedStaff:     nonNil(s.AssignedStaff),
		EstimatedPrice:    s.EstimatedPrice,
		AssignedPrice:     s.AssignedPrice,
		StaffNotes:        s.StaffNotes,
		CustomerName:      s.CustomerName,
		Email:             s.Email,
		Phone:             s.Phone,
		CustomerNotes:     s.CustomerNotes,
		UpdatedBy:         s.UpdatedBy,
		LastUpdated:       s.LastUpdated,
		UnclaimedNotified: s.UnclaimedNotified,
		SubmittedAt:       s.SubmittedAt,
	}
}

func toStaffMetadata(m order.StaffMetadata) servers.StaffMetadata {
	return servers.StaffMetadata{
		PreviousStaff: nonNil(m.PreviousStaff),
		NewStaff:      nonNil(m.NewStaff),
	}
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
