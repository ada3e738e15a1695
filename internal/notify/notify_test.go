package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (r *recordingPublisher) Publish(topic string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics = append(r.topics, topic)
}

func (r *recordingPublisher) published() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.topics...)
}

func TestTopicBuilders(t *testing.T) {
	require.Equal(t, "topic/item/item1/bids", ItemBidsTopic("item1"))
	require.Equal(t, "topic/item/item1/end", ItemEndTopic("item1"))
	require.Equal(t, "user/user1/queue/notifications", UserNotificationsTopic("user1"))
	require.Equal(t, "user/user1/queue/proxy-bids", UserProxyBidsTopic("user1"))
}

func TestAsyncPublisher_DeliversEvents(t *testing.T) {
	sink := &recordingPublisher{}
	async := NewAsyncPublisher(sink, 2, 16)

	for i := 0; i < 10; i++ {
		async.Publish(ItemBidsTopic("item1"), BidUpdateEvent{ItemID: "item1"})
	}
	async.Close()

	require.Len(t, sink.published(), 10)
}

func TestAsyncPublisher_DropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})

	sink := &recordingPublisher{}
	async := NewAsyncPublisher(sink, 1, 1)

	// Occupy the single worker so the queue stays full.
	async.pool.Submit(func() {
		close(started)
		<-block
	})
	<-started

	async.Publish("queued", nil)
	async.Publish("dropped", nil)

	close(block)
	async.Close()

	published := sink.published()
	require.Contains(t, published, "queued")
	require.NotContains(t, published, "dropped")
}

func TestLogPublisherSatisfiesInterface(t *testing.T) {
	var _ Publisher = LogPublisher{}
	var _ Publisher = &AsyncPublisher{}

	// LogPublisher must not panic on arbitrary payloads.
	LogPublisher{}.Publish(AuctionUpdatesTopic, map[string]any{"at": time.Now()})
}
