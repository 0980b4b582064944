package repository

import (
	"testing"

	"legalaid-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestListFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListFilter
		want ListFilter
	}{
		{"defaults", ListFilter{}, ListFilter{Limit: DefaultListLimit}},
		{"caps limit", ListFilter{Limit: 1000}, ListFilter{Limit: MaxListLimit}},
		{"negative offset", ListFilter{Limit: 5, Offset: -3}, ListFilter{Limit: 5}},
		{"keeps kind", ListFilter{Kind: models.KindPenalty, Limit: 10, Offset: 20}, ListFilter{Kind: models.KindPenalty, Limit: 10, Offset: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
