package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/apierror"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// On false the response is already written and the caller must return.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses a UUID path parameter, writing 400 on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

// queryTenant reads the optional ?tenant_id= used by Managers.
func queryTenant(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("tenant_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid tenant_id"))
		return nil, false
	}
	return &id, true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// respondError maps the service error taxonomy to HTTP. Store failures are
// logged with the request id and answered with a generic message.
func respondError(c *gin.Context, err error) {
	var (
		verr *service.ValidationError
		aerr *service.AuthError
		berr *service.InsufficientBalanceError
		werr *service.WriteError
		rerr *service.ReadError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, apierror.Field(verr.Field, verr.Error()))
	case errors.As(err, &aerr):
		c.JSON(http.StatusUnauthorized, apierror.WithCode(aerr.Code, aerr.Message()))
	case errors.As(err, &berr):
		c.JSON(http.StatusConflict, apierror.InsufficientBalance(berr.Error(), berr.Balance, berr.Required))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
	case errors.As(err, &werr):
		logFailure(c, err, "write failed")
		c.JSON(http.StatusInternalServerError, apierror.Internal("The change could not be saved"))
	case errors.As(err, &rerr):
		logFailure(c, err, "read failed")
		c.JSON(http.StatusInternalServerError, apierror.Internal("The data could not be loaded"))
	default:
		logFailure(c, err, "unexpected error")
		c.JSON(http.StatusInternalServerError, apierror.Internal(""))
	}
}

// logFailure hands err to middleware.ErrorHandler, which logs it with the
// request id.
func logFailure(c *gin.Context, err error, msg string) {
	_ = c.Error(err).SetType(gin.ErrorTypePrivate).SetMeta(msg)
}
