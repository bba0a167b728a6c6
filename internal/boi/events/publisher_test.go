package events

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comda/boi-proxy/pkg/logger"
	"github.com/comda/boi-proxy/pkg/messaging"
	"github.com/comda/boi-proxy/pkg/testutil"
)

func TestPublishCallbackOutcome_RoutingKey(t *testing.T) {
	mock := testutil.NewMockPublisher()
	p := NewWithPublisher(mock, logger.Nop())

	p.PublishCallbackOutcome(context.Background(), messaging.CallbackOutcomeEvent{CallbackID: 1, Success: true})
	mock.AssertEventPublished(t, messaging.EventCallbackProcessed)

	p.PublishCallbackOutcome(context.Background(), messaging.CallbackOutcomeEvent{CallbackID: 2, Message: "x"})
	mock.AssertEventPublished(t, messaging.EventCallbackFailed)

	require.Len(t, mock.PublishedEvents, 2)
	assert.Equal(t, messaging.CallbackOutcomeEvent{CallbackID: 2, Message: "x"}, mock.PublishedEvents[1].Payload)
}

func TestPublishCallbackOutcome_ErrorIsLogged(t *testing.T) {
	var out bytes.Buffer
	mock := testutil.NewMockPublisher()
	mock.Err = errors.New("channel closed")
	p := NewWithPublisher(mock, logger.NewWithWriter("test", &out))

	assert.NotPanics(t, func() {
		p.PublishCallbackOutcome(context.Background(), messaging.CallbackOutcomeEvent{CallbackID: 3, Success: true})
	})
	assert.Contains(t, out.String(), "failed to publish callback outcome event")
	assert.Contains(t, out.String(), "channel closed")
}

func TestNopPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		NopPublisher{}.PublishCallbackOutcome(context.Background(), messaging.CallbackOutcomeEvent{})
	})
}
