package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledger/backend/internal/domain/shared/valueobject"
)

func TestClientOverride_CategoryRate(t *testing.T) {
	server := valueobject.NewMoneyUSD(9900)
	user := valueobject.NewMoneyUSD(7500)
	override := &ClientOverride{
		AccountNumber: "ACME-001",
		PerServerRate: &server,
		PerUserRate:   &user,
	}

	tests := []struct {
		name     string
		category BillingCategory
		want     *valueobject.Money
	}{
		{"overridden server rate", CategoryServer, &server},
		{"overridden user rate", CategoryUser, &user},
		{"untouched workstation rate", CategoryWorkstation, nil},
		{"untouched firewall rate", CategoryFirewall, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, override.CategoryRate(tt.category))
		})
	}
}

func TestClientOverride_CategoryRateNilReceiver(t *testing.T) {
	var override *ClientOverride
	assert.Nil(t, override.CategoryRate(CategoryServer))
}
