package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"vacía", PageRequest{}, DefaultPageLimit, 0},
		{"limit máximo", PageRequest{Limit: 500, Offset: 40}, MaxPageLimit, 40},
		{"offset negativo", PageRequest{Limit: 5, Offset: -3}, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset)
		})
	}
}
