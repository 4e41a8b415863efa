package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{"no details", nil, StatusPending},
		{"all pending", []string{StatusPending, StatusPending}, StatusPending},
		{"one started", []string{StatusPending, StatusInProgress}, StatusInProgress},
		{"partly completed", []string{StatusCompleted, StatusPending}, StatusInProgress},
		{"all completed", []string{StatusCompleted, StatusCompleted}, StatusCompleted},
		{"completed and cancelled", []string{StatusCompleted, StatusCancelled}, StatusCompleted},
		{"all cancelled", []string{StatusCancelled, StatusCancelled}, StatusCancelled},
		{"cancelled and pending", []string{StatusCancelled, StatusPending}, StatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateStatus(tt.statuses))
		})
	}
}

func TestOrderDetailStatuses(t *testing.T) {
	order := Order{OrderDetails: []OrderDetail{
		{OrderDetailStatus: &OrderDetailStatus{Status: StatusCompleted}},
		{},
	}}
	assert.Equal(t, []string{StatusCompleted, StatusPending}, order.DetailStatuses())
}

func TestAddOnSelectionEqual(t *testing.T) {
	one, two := uint(1), uint(2)
	otherOne := uint(1)

	assert.True(t, AddOnSelection{}.Equal(AddOnSelection{}))
	assert.True(t, AddOnSelection{CapacityID: &one}.Equal(AddOnSelection{CapacityID: &otherOne}))
	assert.False(t, AddOnSelection{CapacityID: &one}.Equal(AddOnSelection{CapacityID: &two}))
	assert.False(t, AddOnSelection{MilkID: &one}.Equal(AddOnSelection{}))
}

func TestPrincipalHasRole(t *testing.T) {
	p := Principal{ID: 3, Role: RoleManager}
	assert.True(t, p.HasRole(RoleAdmin, RoleManager))
	assert.False(t, p.HasRole(RoleUser))
	assert.True(t, IsEmployeeRole(RoleBarista))
	assert.False(t, IsEmployeeRole(RoleUser))
}
