package domain

// nextStatus is the linear status transition table. Any transition not
// present here is rejected.
var nextStatus = map[LoadStatus]LoadStatus{
	LoadStatusNew:      LoadStatusPosted,
	LoadStatusPosted:   LoadStatusAssigned,
	LoadStatusAssigned: LoadStatusShipped,
	LoadStatusShipped:  LoadStatusDelivered,
}

// CanTransitionTo reports whether next directly follows s in the lifecycle.
func (s LoadStatus) CanTransitionTo(next LoadStatus) bool {
	return nextStatus[s] == next
}

// stateSequence is the fixed order of delivery phases while a load is assigned.
var stateSequence = [...]LoadState{
	LoadStateEnRouteToPickUp,
	LoadStateArrivedToPickUp,
	LoadStateEnRouteToDelivery,
	LoadStateArrivedToDelivery,
}

// FirstLoadState returns the state a load enters on assignment.
func FirstLoadState() LoadState {
	return stateSequence[0]
}

// Next returns the state that follows s. ok is false when s is the last
// state in the sequence or not a member of it.
func (s LoadState) Next() (next LoadState, ok bool) {
	for i, v := range stateSequence[:len(stateSequence)-1] {
		if s == v {
			return stateSequence[i+1], true
		}
	}
	return LoadStateNone, false
}

// Last reports whether s is the final delivery phase. Reaching it
// completes the load.
func (s LoadState) Last() bool {
	return s == stateSequence[len(stateSequence)-1]
}

// Valid checks if the LoadState is a member of the delivery sequence.
func (s LoadState) Valid() bool {
	for _, v := range stateSequence {
		if s == v {
			return true
		}
	}
	return false
}

// logMessages maps each delivery phase to its shipping-log message.
var logMessages = map[LoadState]string{
	LoadStateEnRouteToPickUp:   "En route to pick up",
	LoadStateArrivedToPickUp:   "Arrived to pick up",
	LoadStateEnRouteToDelivery: "En route to delivery",
	LoadStateArrivedToDelivery: "Arrived to delivery",
}

// LogMessage returns the shipping-log message recorded when the load
// enters state s.
func (s LoadState) LogMessage() string {
	return logMessages[s]
}
