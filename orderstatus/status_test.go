package orderstatus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := Parse(" preparing ")
	require.NoError(t, err)
	assert.Equal(t, Preparing, s)

	_, err = Parse("LOST")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		actor   Actor
		wantErr bool
	}{
		{name: "restaurant accepts", from: Pending, to: Accepted, actor: ActorRestaurant},
		{name: "restaurant starts preparing", from: Accepted, to: Preparing, actor: ActorRestaurant},
		{name: "restaurant marks ready", from: Preparing, to: Ready, actor: ActorRestaurant},
		{name: "restaurant rejects pending", from: Pending, to: Cancelled, actor: ActorRestaurant},
		{name: "restaurant rejects preparing", from: Preparing, to: Cancelled, actor: ActorRestaurant},
		{name: "restaurant cannot reject ready", from: Ready, to: Cancelled, actor: ActorRestaurant, wantErr: true},
		{name: "restaurant cannot skip", from: Pending, to: Ready, actor: ActorRestaurant, wantErr: true},
		{name: "restaurant cannot pick up", from: Ready, to: PickedUp, actor: ActorRestaurant, wantErr: true},
		{name: "customer cancels accepted", from: Accepted, to: Cancelled, actor: ActorCustomer},
		{name: "customer cannot cancel ready", from: Ready, to: Cancelled, actor: ActorCustomer, wantErr: true},
		{name: "customer cannot accept", from: Pending, to: Accepted, actor: ActorCustomer, wantErr: true},
		{name: "driver picks up", from: Ready, to: PickedUp, actor: ActorDriver},
		{name: "driver delivers", from: Delivering, to: Delivered, actor: ActorDriver},
		{name: "delivered is terminal", from: Delivered, to: Cancelled, actor: ActorRestaurant, wantErr: true},
		{name: "cancelled is terminal", from: Cancelled, to: Pending, actor: ActorRestaurant, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := CanTransition(testCase.from, testCase.to, testCase.actor)
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				var transitionErr *TransitionError
				assert.True(t, errors.As(err, &transitionErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	err := CanTransition("LOST", Accepted, ActorRestaurant)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, actor := range []Actor{ActorRestaurant, ActorCustomer, ActorDriver} {
		assert.Empty(t, Next(Delivered, actor))
		assert.Empty(t, Next(Cancelled, actor))
	}
	assert.True(t, Delivered.IsTerminal())
	assert.True(t, Cancelled.IsTerminal())
	assert.False(t, Ready.IsTerminal())
}

func TestCanCustomerCancel(t *testing.T) {
	want := map[Status]bool{
		Pending: true, Accepted: true, Preparing: true,
		Ready: false, PickedUp: false, Delivering: false, Delivered: false, Cancelled: false,
	}
	for status, expected := range want {
		assert.Equal(t, expected, CanCustomerCancel(status), status)
	}
}

func TestTransitionError_Message(t *testing.T) {
	err := CanTransition(Pending, Ready, ActorRestaurant)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCEPTED")
	assert.Contains(t, err.Error(), "CANCELLED")
}

func TestDisplay(t *testing.T) {
	colors := map[string]Status{}
	for _, status := range All {
		p := Display(status)
		assert.NotEmpty(t, p.Label, status)
		assert.NotEmpty(t, p.Icon, status)
		if other, seen := colors[p.Color]; seen {
			t.Errorf("%s and %s share color %s", status, other, p.Color)
		}
		colors[p.Color] = status
	}

	assert.NotEqual(t, Display(Pending).Color, Display(Preparing).Color)
	assert.Equal(t, "Unknown", Display("LOST").Label)
}

func TestRestaurantActions(t *testing.T) {
	assert.Equal(t, []Action{ActionAccept, ActionReject}, RestaurantActions(Pending))
	assert.Equal(t, []Action{ActionStartPreparing, ActionReject}, RestaurantActions(Accepted))
	assert.Equal(t, []Action{ActionMarkReady, ActionReject}, RestaurantActions(Preparing))
	assert.Empty(t, RestaurantActions(Ready))
	assert.Empty(t, RestaurantActions(Delivered))

	target, ok := ActionMarkReady.Target()
	assert.True(t, ok)
	assert.Equal(t, Ready, target)
	assert.Equal(t, "Mark Ready", ActionMarkReady.Label())

	_, ok = Action("teleport").Target()
	assert.False(t, ok)
}
