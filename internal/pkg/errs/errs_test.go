package errs_test

import (
	"errors"
	"testing"

	"bakery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError(stringer("pending"), stringer("delivered"))

	assert.Equal(t, "pending", err.From)
	assert.Equal(t, "delivered", err.To)
	assert.Equal(t, "invalid transition: pending -> delivered", err.Error())
	assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
}

func TestForbiddenError(t *testing.T) {
	t.Run("NewForbiddenError", func(t *testing.T) {
		err := errs.NewForbiddenError("delivery", "pending -> preparing")

		assert.Equal(t, "delivery", err.Actor)
		assert.Equal(t, "pending -> preparing", err.Action)
		require.NoError(t, err.Cause)
		assert.Equal(t, "forbidden: delivery may not pending -> preparing", err.Error())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("NewForbiddenErrorWithCause", func(t *testing.T) {
		cause := errors.New("not the owner")
		err := errs.NewForbiddenErrorWithCause("baker", "preparing -> prepared", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "forbidden: baker may not preparing -> prepared (cause: not the owner)", err.Error())
		require.ErrorIs(t, err, errs.ErrForbidden)
		require.ErrorIs(t, err, cause)
	})
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "42\nforged")

	assert.Equal(t, "conflict: order 42 forged was changed concurrently", err.Error())
	assert.Equal(t, errs.ErrConflict, err.Unwrap())
}

func TestObjectAlreadyExistsError(t *testing.T) {
	err := errs.NewObjectAlreadyExistsError("order", "42\nforged")

	assert.Equal(t, "object already exists: order 42 forged", err.Error())
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.False(t, errs.IsValidation(err))
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewStorageError("orders.add", cause)

	assert.Equal(t, "storage failure: orders.add (cause: connection reset)", err.Error())
	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, cause)
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("quantity")))
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("items")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("quantity", 0, 1, 10)))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsRequiredError("address"), errors.New("x"))))
	assert.False(t, errs.IsValidation(errs.NewConflictError("order", 1)))
	assert.False(t, errs.IsValidation(nil))
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrForbidden)
		require.Error(t, errs.ErrConflict)
		require.Error(t, errs.ErrAlreadyExists)
		require.Error(t, errs.ErrStorage)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "forbidden", errs.ErrForbidden.Error())
		assert.Equal(t, "conflict", errs.ErrConflict.Error())
		assert.Equal(t, "object already exists", errs.ErrAlreadyExists.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		forbiddenErr := errs.NewForbiddenError("accountant", "cancel")
		require.ErrorIs(t, forbiddenErr, errs.ErrForbidden)
	})
}
