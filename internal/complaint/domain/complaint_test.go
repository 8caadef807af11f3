package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{StatusReceived, "접수"},
		{StatusPending, "접수"},
		{StatusProcessing, "처리중"},
		{StatusInProgress, "처리중"},
		{StatusDone, "완료"},
		{"escalated", "escalated"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusLabel(tt.status))
		})
	}
}
