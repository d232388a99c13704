package orderstatus

import (
	"errors"
	"fmt"
	"strings"
)

type Status string

const (
	Pending    Status = "PENDING"
	Accepted   Status = "ACCEPTED"
	Preparing  Status = "PREPARING"
	Ready      Status = "READY"
	PickedUp   Status = "PICKED_UP"
	Delivering Status = "DELIVERING"
	Delivered  Status = "DELIVERED"
	Cancelled  Status = "CANCELLED"
)

// Forward lists the non-cancelled statuses in lifecycle order.
var Forward = []Status{Pending, Accepted, Preparing, Ready, PickedUp, Delivering, Delivered}

// All lists every known status.
var All = append(append([]Status{}, Forward...), Cancelled)

type Actor string

const (
	ActorRestaurant Actor = "restaurant"
	ActorCustomer   Actor = "customer"
	ActorDriver     Actor = "driver"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// TransitionError describes a rejected status change.
type TransitionError struct {
	From  Status
	To    Status
	Actor Actor
}

func (e *TransitionError) Error() string {
	allowed := Next(e.From, e.Actor)
	valid := "none"
	if len(allowed) > 0 {
		names := make([]string, len(allowed))
		for i, s := range allowed {
			names[i] = string(s)
		}
		valid = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s cannot move order from %s to %s (allowed: %s)", e.Actor, e.From, e.To, valid)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func Parse(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

func (s Status) Valid() bool {
	for _, known := range All {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) String() string {
	return string(s)
}

type transition struct {
	from  Status
	to    Status
	actor Actor
}

// transitions is the complete lifecycle. Restaurants drive the kitchen half,
// drivers the road half, and customers may only cancel before READY.
var transitions = []transition{
	{Pending, Accepted, ActorRestaurant},
	{Accepted, Preparing, ActorRestaurant},
	{Preparing, Ready, ActorRestaurant},
	{Pending, Cancelled, ActorRestaurant},
	{Accepted, Cancelled, ActorRestaurant},
	{Preparing, Cancelled, ActorRestaurant},

	{Pending, Cancelled, ActorCustomer},
	{Accepted, Cancelled, ActorCustomer},
	{Preparing, Cancelled, ActorCustomer},

	{Ready, PickedUp, ActorDriver},
	{PickedUp, Delivering, ActorDriver},
	{Delivering, Delivered, ActorDriver},
}

var allowed = func() map[transition]bool {
	m := make(map[transition]bool, len(transitions))
	for _, t := range transitions {
		m[t] = true
	}
	return m
}()

// CanTransition returns nil when actor may move an order from one status to another.
func CanTransition(from, to Status, actor Actor) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if allowed[transition{from, to, actor}] {
		return nil
	}
	return &TransitionError{From: from, To: to, Actor: actor}
}

// Next returns the statuses actor may move an order to from the given status.
func Next(from Status, actor Actor) []Status {
	var next []Status
	for _, t := range transitions {
		if t.from == from && t.actor == actor {
			next = append(next, t.to)
		}
	}
	return next
}

func CanCustomerCancel(s Status) bool {
	return CanTransition(s, Cancelled, ActorCustomer) == nil
}
