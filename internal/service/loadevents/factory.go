package loadevents

import "context"

type actionFunc func(context.Context, Event) error

// actionFactory resolves an event name to the action handling it.
// Unknown events resolve to nothing and are skipped.
type actionFactory struct {
	actions map[string]actionFunc
}

func newActionFactory(onPosted, onTruckFreed actionFunc) *actionFactory {
	return &actionFactory{
		actions: map[string]actionFunc{
			EventLoadPosted: onPosted,
			EventTruckFreed: onTruckFreed,
		},
	}
}

func (f *actionFactory) get(event string) (actionFunc, bool) {
	fn, ok := f.actions[event]
	return fn, ok
}
