package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanClose(t *testing.T) {
	open := func(balance string) *Account {
		b, _ := decimal.NewFromString(balance)
		return &Account{Status: AccountStatusOpen, Balance: b}
	}

	assert.True(t, open("0").CanClose())
	assert.True(t, open("0.00").CanClose())

	assert.False(t, open("0.01").CanClose())
	assert.False(t, open("100").CanClose())

	closed := &Account{Status: AccountStatusClosed, Balance: decimal.Zero}
	assert.False(t, closed.CanClose(), "CLOSED is terminal")
}
