// Package handler contains the HTTP handlers of the storefront API.
package handler

import (
	"strconv"

	deliverycontext "teeshop/internal/delivery/context"
	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindAndValidate decodes the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}

	return c.Validate(req)
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails(name + " must be a positive integer"))
	}

	return id, nil
}

// queryInt64 parses an optional integer query parameter.
func queryInt64(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return nil, errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails(name + " must be a positive integer"))
	}

	return &v, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(c echo.Context, name string) (*bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidArgument.WithDetails(name + " must be true or false"))
	}

	return &v, nil
}

// callerOf returns the signed-in user. Routes using it sit behind RequireUser.
func callerOf(c echo.Context) (*entity.User, error) {
	caller := deliverycontext.GetCaller(c)
	if caller == nil {
		return nil, errors.WithStack(domainerrors.ErrUserNotRegistered)
	}

	return caller, nil
}

// authorizeUser allows the user themself and admins.
func authorizeUser(c echo.Context, userID int64) (*entity.User, error) {
	caller, err := callerOf(c)
	if err != nil {
		return nil, err
	}
	if caller.ID != userID && !caller.IsAdmin() {
		return nil, errors.WithStack(domainerrors.ErrForbidden.WithDetails("not allowed to act for another user"))
	}

	return caller, nil
}

// userIDOrCaller defaults an omitted userId to the caller and authorizes it.
func userIDOrCaller(c echo.Context, userID int64) (int64, error) {
	if userID == 0 {
		caller, err := callerOf(c)
		if err != nil {
			return 0, err
		}

		return caller.ID, nil
	}

	if _, err := authorizeUser(c, userID); err != nil {
		return 0, err
	}

	return userID, nil
}
