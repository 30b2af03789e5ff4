package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/guustavovelos0/artisan/internal/apierror"
	"github.com/guustavovelos0/artisan/internal/middleware"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps service error kinds to HTTP statuses. Unknown
// errors become a generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	var shortage *service.InsufficientMaterialsError
	switch {
	case errors.As(err, &shortage):
		c.JSON(http.StatusConflict, apierror.NewShortage(
			"Insufficient materials in stock", shortage.Shortfalls))
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNoMaterialsDefined),
		errors.Is(err, service.ErrDiscountTooLarge),
		errors.Is(err, service.ErrClientHasNoEmail):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.Is(err, service.ErrDuplicateBOMEntry),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrQuoteNotEditable):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrMaterialNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrQuoteNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
	case errors.Is(err, service.ErrOperationFailed):
		c.JSON(http.StatusInternalServerError, apierror.New(service.ErrOperationFailed.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// pathID reads a UUID path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// currentUser pulls the authenticated account id set by the JWT middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return uuid.Nil, false
	}
	return id, true
}
