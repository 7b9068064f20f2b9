package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventScheduleSaved, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Period)
		return errors.New("first failed")
	})
	d.Subscribe(EventScheduleSaved, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Period)
		return nil
	})
	d.Subscribe(EventPatternApplied, func(context.Context, Event) error {
		got = append(got, "unrelated")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventScheduleSaved, Period: "2024-3"})
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first:2024-3", "second:2024-3"}, got)

	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventExportGenerated}))
}
