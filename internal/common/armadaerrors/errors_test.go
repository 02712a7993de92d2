package armadaerrors

import (
	"net/http"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHttpStatusFromError(t *testing.T) {
	tests := map[string]struct {
		err  error
		want int
	}{
		"ErrNotFound":                     {&ErrNotFound{}, http.StatusNotFound},
		"ErrInvalidArgument":              {&ErrInvalidArgument{}, http.StatusBadRequest},
		"pkg.Error => ErrNotFound":        {errors.WithMessage(&ErrNotFound{}, "foo"), http.StatusNotFound},
		"pkg.Error => ErrInvalidArgument": {errors.WithMessage(&ErrInvalidArgument{}, "foo"), http.StatusBadRequest},
		"multierror => ErrInvalidArgument": {
			multierror.Append(errors.New("foo"), &ErrInvalidArgument{}),
			http.StatusBadRequest,
		},
		"pkg.Error": {errors.New("foo"), http.StatusInternalServerError},
		"nil":       {nil, http.StatusOK},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, HttpStatusFromError(tc.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `resource "a" of type "job" does not exist; gone`, (&ErrNotFound{Type: "job", Value: "a", Message: "gone"}).Error())
	assert.Equal(t, `resource "a" does not exist`, (&ErrNotFound{Value: "a"}).Error())
	assert.Equal(t, `value SLEEPING is invalid for field "state"`, (&ErrInvalidArgument{Name: "state", Value: "SLEEPING"}).Error())
	assert.Equal(t, `value 0 is invalid for field "take"; must be positive`, (&ErrInvalidArgument{Name: "take", Value: 0, Message: "must be positive"}).Error())
}
