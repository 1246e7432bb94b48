package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Domain string `validate:"required,hostname_rfc1123"`
	Count  int    `validate:"min=1,max=100"`
	Unit   string `validate:"oneof=seconds minutes"`
	Price  string `validate:"omitempty,numeric"`
}

func TestValidationError(t *testing.T) {
	err := validator.New().Struct(sample{Count: 101, Unit: "weeks", Price: "abc"})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	resp := ValidationError(verrs)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t,
		"field Domain is a required field, field Count must be at most 100, "+
			"field Unit must be one of: seconds minutes, field Price is not a number",
		resp.Error,
	)
}

func TestOKAndError(t *testing.T) {
	assert.Equal(t, Response{Status: StatusOK}, OK())
	assert.Equal(t, Response{Status: StatusError, Error: "boom"}, Error("boom"))
}
