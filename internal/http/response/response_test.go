package response

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]int{"id": 5})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("boom")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "boom", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		UserUID   string `validate:"required,uuid"`
		StartDate string `validate:"required,datetime=02-01-2006"`
		Quantity  int    `validate:"gt=0"`
	}

	v := validator.New()
	err := v.Struct(req{UserUID: "not-a-uuid", StartDate: "2025-06-01", Quantity: 0})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	resp := ValidationError(errs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "UserUID")
	assert.Contains(t, resp.Error, "02-01-2006")
	assert.Contains(t, resp.Error, "Quantity")
}
