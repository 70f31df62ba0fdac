package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	// WorkspaceHeader carries the workspace the request operates on.
	// Authentication happens upstream; by the time a request reaches this
	// service the gateway has already resolved the user to a workspace.
	WorkspaceHeader = "X-Workspace-ID"

	// WorkspaceContextKey is the echo context key for the workspace ID
	WorkspaceContextKey = "workspace_id"
)

// WorkspaceMiddleware extracts and validates the workspace header, storing
// the workspace ID in the request context
func WorkspaceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(WorkspaceHeader)
			if raw == "" {
				return unauthorizedError(c, "Workspace header required")
			}

			id, err := strconv.ParseInt(raw, 10, 32)
			if err != nil || id <= 0 {
				return unauthorizedError(c, "Invalid workspace header")
			}

			c.Set(WorkspaceContextKey, int32(id))
			return next(c)
		}
	}
}

// GetWorkspaceID returns the workspace ID from the request context, or 0
// when the workspace middleware did not run
func GetWorkspaceID(c echo.Context) int32 {
	if id, ok := c.Get(WorkspaceContextKey).(int32); ok {
		return id
	}
	return 0
}
