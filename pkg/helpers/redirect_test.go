package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTarget(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"next parameter present", "http://localhost:8080/accounts/login/?next=/cart/checkout/", "/cart/checkout/"},
		{"no referer", "", "/dashboard"},
		{"no query", "http://localhost:8080/accounts/login/", "/dashboard"},
		{"other parameters only", "http://localhost:8080/accounts/login/?command=verification&email=a@b.com", "/dashboard"},
		{"empty next", "http://localhost:8080/accounts/login/?next=", "/dashboard"},
		{"unparsable referer", "http://%zz", "/dashboard"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextTarget(tc.referer, "/dashboard"))
		})
	}
}
