package httpapi

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/notification"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// LocationLister lists the supported location keys.
type LocationLister interface {
	Keys() []string
}

// NotificationLister lists recent notifications, newest first.
type NotificationLister interface {
	List() []notification.Notification
}

// Dependencies are the components the handlers serve.
type Dependencies struct {
	Weather       *weather.Service
	Dashboard     *dashboard.Dashboard
	Locations     LocationLister
	Notifications NotificationLister
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q := weatherQuery{Location: strings.TrimSpace(c.Query("location"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "location must be at least 2 characters")
		}

		bundle, err := deps.Weather.Resolve(c.UserContext(), q.Location)
		if err != nil {
			if errors.Is(err, weather.ErrRetrievalFailed) {
				return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
			}
			return fiber.NewError(fiber.StatusServiceUnavailable, "weather request aborted")
		}

		return c.JSON(bundle)
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"default":   deps.Weather.DefaultLocation(),
			"locations": deps.Locations.Keys(),
		})
	})

	v1.Get("/conditions/:condition", func(c *fiber.Ctx) error {
		raw, err := url.PathUnescape(c.Params("condition"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid condition")
		}
		cond := weather.Condition(raw)
		return c.JSON(fiber.Map{
			"condition": cond,
			"icon":      weather.IconFor(cond),
		})
	})

	v1.Post("/dashboard/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		gen, err := deps.Dashboard.Search(req.Query)
		if err != nil {
			switch {
			case errors.Is(err, dashboard.ErrInvalidQuery):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, dashboard.ErrClosed):
				return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to start search")
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"generation": gen,
			"query":      strings.TrimSpace(req.Query),
		})
	})

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(deps.Dashboard.State())
	})

	v1.Get("/dashboard/chart", func(c *fiber.Ctx) error {
		if m := c.Query("mode"); m != "" {
			deps.Dashboard.SetChartMode(weather.ParseChartMode(m))
		}
		mode, series := deps.Dashboard.Chart()
		return c.JSON(fiber.Map{
			"mode":   mode,
			"series": series,
		})
	})

	v1.Get("/notifications", func(c *fiber.Ctx) error {
		return c.JSON(deps.Notifications.List())
	})
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	Location string `validate:"required,min=2"`
}

// searchRequest is the body of a dashboard search.
type searchRequest struct {
	Query string `json:"query"`
}
