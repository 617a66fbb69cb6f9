package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/pkg/jsonx"
	md "github.com/Astemirdum/library-booking/pkg/middleware"
	"github.com/Astemirdum/library-booking/pkg/validate"
	_ "github.com/Astemirdum/library-booking/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const internalErrorMessage = "An error occurred"

type Handler struct {
	bookSvc        BookService
	customerSvc    CustomerService
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(bookSvc BookService, customerSvc CustomerService, reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		bookSvc:        bookSvc,
		customerSvc:    customerSvc,
		reservationSvc: reservationSvc,
		log:            log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonx.Serializer{}
	e.Validator = validate.NewCustomValidator()
	e.HTTPErrorHandler = h.errorHandler

	e.Pre(md.LowercasePath)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(md.CORS())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		md.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/books", h.ListBooks)
	api.GET("/books/search", h.SearchBooks)
	api.GET("/books/:id", h.GetBook)
	api.POST("/books", h.CreateBook)
	api.PUT("/books/:id", h.UpdateBook)
	api.DELETE("/books/:id", h.DeleteBook)

	api.GET("/customers", h.ListCustomers)
	api.GET("/customers/:id", h.GetCustomer)
	api.POST("/customers", h.CreateCustomer)
	api.PUT("/customers/:id", h.UpdateCustomer)
	api.DELETE("/customers/:id", h.DeleteCustomer)

	api.POST("/reservations", h.CreateReservation)
	api.GET("/reservations/:id", h.GetReservation)
	api.DELETE("/reservations/:id", h.DeleteReservation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// errorHandler answers whatever a handler returned. Errors that are not
// *echo.HTTPError are faults and never leak their text to the client.
func (h *Handler) errorHandler(err error, c echo.Context) {
	// the request logger has already handled this error
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			err = c.NoContent(http.StatusNotFound)
		} else {
			err = c.JSON(he.Code, errs.ErrorResponse{Message: fmt.Sprint(he.Message)})
		}
	} else {
		h.log.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		err = c.JSON(http.StatusInternalServerError, errs.ErrorResponse{Message: internalErrorMessage})
	}
	if err != nil {
		h.log.Warn("write error response", zap.Error(err))
	}
}

var badRequestErrs = []error{
	errs.ErrEmptyPayload,
	errs.ErrIDMismatch,
	errs.ErrInvalid,
	errs.ErrBookUnavailable,
	errs.ErrCustomerNotFound,
	errs.ErrAlreadyReserved,
}

// serviceError maps a service error onto a response. Unknown errors are
// returned for errorHandler to report.
func serviceError(c echo.Context, err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Message: target.Error()})
		}
	}
	return err
}

// parseID accepts what fits the serial (int4) id columns.
func parseID(s string) (int, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func pathID(c echo.Context) (int, error) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

// bindBody decodes the request body into *dst. An empty body or a JSON null
// leaves *dst nil.
func bindBody[T any](c echo.Context, dst **T) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	if *dst == nil {
		return nil
	}
	if err := c.Validate(*dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func location(resource string, id int) string {
	return fmt.Sprintf("/api/%s/%d", resource, id)
}
