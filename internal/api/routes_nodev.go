//go:build !dev

package api

import "github.com/labstack/echo/v4"

// DevDependencies is empty in builds without the dev tag.
type DevDependencies struct{}

func registerDevRoutes(*echo.Group, Dependencies) {}
