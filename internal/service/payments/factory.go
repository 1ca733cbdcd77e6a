package payments

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onConfirmed actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			"payment_confirmed": onConfirmed,
			"payment_succeeded": onConfirmed,
			"paid":              onConfirmed,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	fn, ok := f.byType[eventType]
	return fn, ok
}
