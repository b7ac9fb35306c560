package http

import (
	"errors"
	"log/slog"
	"net/http"

	"printdesk/internal/generated/servers"
	"printdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a use-case error to its status code and body.
//
//	*errs.ClaimConflictError   409 {error, claimedBy}
//	*errs.NotClaimantError     403 {error, claimedBy}
//	*errs.InvalidMembersError  400 {error, invalidMembers}
//	validation, invalid state  400
//	not found                  404
//	anything else              500
func respondError(ctx echo.Context, logger *slog.Logger, err error) error {
	var (
		conflict    *errs.ClaimConflictError
		notClaimant *errs.NotClaimantError
		members     *errs.InvalidMembersError
		httpErr     *echo.HTTPError
	)

	switch {
	case errors.As(err, &conflict):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Error:     "Order is already claimed",
			ClaimedBy: &conflict.ClaimedBy,
		})
	case errors.As(err, &notClaimant):
		return ctx.JSON(http.StatusForbidden, servers.Error{
			Error:     "Order is claimed by someone else",
			ClaimedBy: &notClaimant.ClaimedBy,
		})
	case errors.As(err, &members):
		invalid := append([]string(nil), members.Members...)
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Error:          "Unknown staff members",
			InvalidMembers: &invalid,
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrInvalidState):
		return ctx.JSON(http.StatusBadRequest, servers.Error{Error: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{Error: "Order not found"})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, servers.Error{Error: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, servers.Error{Error: err.Error()})
	case errors.As(err, &httpErr):
		return ctx.JSON(httpErr.Code, servers.Error{Error: http.StatusText(httpErr.Code)})
	default:
		logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{Error: "Internal error"})
	}
}

// errorHandler renders errors that escape handlers (routing, binding,
// middleware) in the same body shape as respondError.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			msg := http.StatusText(httpErr.Code)
			if s, ok := httpErr.Message.(string); ok && s != "" {
				msg = s
			}
			_ = ctx.JSON(httpErr.Code, servers.Error{Error: msg})
			return
		}
		_ = respondError(ctx, logger, err)
	}
}
