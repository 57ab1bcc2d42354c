package service

import "errors"

var (
	// ErrInvalidDriverCount is returned when a simulation asks for fewer than one driver.
	ErrInvalidDriverCount = errors.New("available_drivers must be a positive integer")

	// ErrInvalidMaxHours is returned when the per-driver hour cap is outside (0, 24].
	ErrInvalidMaxHours = errors.New("max_hours_per_driver must be greater than 0 and at most 24")

	// ErrInvalidStartTime is returned when the start time is not HH:MM.
	ErrInvalidStartTime = errors.New("start_time must be in HH:MM format")

	// ErrInsufficientDrivers is returned when fewer drivers exist than a simulation asks for.
	ErrInsufficientDrivers = errors.New("not enough drivers")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRouteID is returned when a route ID is not a positive integer.
	ErrInvalidRouteID = errors.New("invalid route id")

	// ErrInvalidOrderID is returned when order ID is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidSimulationID is returned when simulation ID is empty.
	ErrInvalidSimulationID = errors.New("invalid simulation id")

	// ErrInvalidCredentials is returned when a username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a bearer token is missing, malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden is returned when the caller's role does not allow the operation.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrSeedInProgress is returned when another import holds the seed lock.
	ErrSeedInProgress = errors.New("a seed import is already in progress")

	// ErrRateLimited is returned when a client exceeds its request budget.
	ErrRateLimited = errors.New("too many requests, please try again later")
)
