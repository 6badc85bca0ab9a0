package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookly/internal/domains/appointment/model/dto"
	"bookly/shared/validator"
)

const publicBody = `{
	"service_id": "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a001",
	"professional_id": "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a002",
	"date": "2030-06-10",
	"time": "10:00"%s
}`

func TestBookAppointmentRequest(t *testing.T) {
	t.Run("customer id alone is rejected", func(t *testing.T) {
		body := strings.Replace(publicBody, "%s", `, "customer_id": "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a003"`, 1)

		var req dto.BookAppointmentRequest
		assert.Error(t, validator.Validate(strings.NewReader(body), &req))
	})

	t.Run("customer id next to a customer block is ignored", func(t *testing.T) {
		body := strings.Replace(publicBody, "%s",
			`, "customer_id": "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a003", "customer": {"name": "Maria", "phone": "+55 11 99990000"}`, 1)

		var req dto.BookAppointmentRequest
		require.NoError(t, validator.Validate(strings.NewReader(body), &req))

		create := req.ToCreate()
		assert.Empty(t, create.CustomerID)
		require.NotNil(t, create.Customer)
		assert.Equal(t, "Maria", create.Customer.Name)
		assert.Equal(t, "2030-06-10", create.Date)
	})
}
