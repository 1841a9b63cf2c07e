package validator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/validator"
)

type sampleRequest struct {
	Name     string `validate:"required"`
	Currency string `validate:"omitempty,len=3"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, validator.ValidateRequest(sampleRequest{Name: "ok"}))

	err := validator.ValidateRequest(sampleRequest{})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))

	err = validator.ValidateRequest(sampleRequest{Name: "ok", Currency: "naira"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestValidateRequest_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, validator.ValidateRequest(sampleRequest{Name: "ok"}))
			assert.Error(t, validator.ValidateRequest(sampleRequest{}))
		}()
	}
	wg.Wait()
}
