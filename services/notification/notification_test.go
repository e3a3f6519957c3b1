package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBuilder(t *testing.T) {
	msg := NewMessageBuilder(EventReservationCancelled, 12).Detail("lý do: %s", "khách hủy").Build()
	assert.Equal(t, "🔔 Đặt phòng #12 đã bị hủy: lý do: khách hủy", msg)
}

func TestKafkaPublisher_SendsEventJSON(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var e Event
		if err := json.Unmarshal(val, &e); err != nil {
			return err
		}
		if e.Type != EventReservationCreated || e.EntityID != 5 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewKafkaPublisherWithProducer(producer, "hotel-events")
	require.NoError(t, p.Publish(context.Background(), NewEvent(EventReservationCreated, 1, 5, nil)))
	require.NoError(t, p.Close())
}

func TestKafkaPublisher_PropagatesFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisherWithProducer(producer, "hotel-events")
	err := p.Publish(context.Background(), NewEvent(EventReservationNoShow, 1, 9, nil))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

type failing struct{}

func (failing) Publish(context.Context, Event) error { return errors.New("down") }

func TestMultiPublisher_DeliversToAllAndJoinsErrors(t *testing.T) {
	rec := &Recorder{}
	mp := MultiPublisher{failing{}, rec, nil}
	err := mp.Publish(context.Background(), NewEvent(EventBlockApproved, 1, 3, nil))
	assert.EqualError(t, err, "down")
	assert.Equal(t, []string{EventBlockApproved}, rec.Types())
}

func TestMelodyPublisher_NilInstance(t *testing.T) {
	err := NewMelodyPublisher(nil).Publish(context.Background(), Event{})
	assert.Error(t, err)
}
