package orderstatus

// Presentation is how a status is rendered in both apps.
type Presentation struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var presentations = map[Status]Presentation{
	Pending:    {Label: "Order Placed", Color: "#FF9800", Icon: "time-outline"},
	Accepted:   {Label: "Accepted", Color: "#2196F3", Icon: "checkmark-circle-outline"},
	Preparing:  {Label: "Being Prepared", Color: "#9C27B0", Icon: "restaurant-outline"},
	Ready:      {Label: "Ready for Pickup", Color: "#009688", Icon: "bag-check-outline"},
	PickedUp:   {Label: "Picked Up", Color: "#00BCD4", Icon: "bicycle-outline"},
	Delivering: {Label: "On the Way", Color: "#3F51B5", Icon: "navigate-outline"},
	Delivered:  {Label: "Delivered", Color: "#4CAF50", Icon: "checkmark-done-circle-outline"},
	Cancelled:  {Label: "Cancelled", Color: "#F44336", Icon: "close-circle-outline"},
}

var unknown = Presentation{Label: "Unknown", Color: "#9E9E9E", Icon: "help-circle-outline"}

// Display returns the label, color and icon for a status.
func Display(s Status) Presentation {
	if p, ok := presentations[s]; ok {
		return p
	}
	return unknown
}

// Action is a restaurant-app button that requests a status change.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionStartPreparing Action = "start_preparing"
	ActionMarkReady      Action = "mark_ready"
	ActionReject         Action = "reject"
)

var actionTargets = map[Action]Status{
	ActionAccept:         Accepted,
	ActionStartPreparing: Preparing,
	ActionMarkReady:      Ready,
	ActionReject:         Cancelled,
}

var actionLabels = map[Action]string{
	ActionAccept:         "Accept",
	ActionStartPreparing: "Start Preparing",
	ActionMarkReady:      "Mark Ready",
	ActionReject:         "Reject",
}

// Target is the status an action asks the server for.
func (a Action) Target() (Status, bool) {
	s, ok := actionTargets[a]
	return s, ok
}

func (a Action) Label() string {
	return actionLabels[a]
}

// RestaurantActions lists the actions offered to the restaurant for an order
// in status s, forward action first.
func RestaurantActions(s Status) []Action {
	var actions []Action
	for _, a := range []Action{ActionAccept, ActionStartPreparing, ActionMarkReady, ActionReject} {
		if CanTransition(s, actionTargets[a], ActorRestaurant) == nil {
			actions = append(actions, a)
		}
	}
	return actions
}
