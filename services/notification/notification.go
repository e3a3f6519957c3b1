package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Event names broadcast to connected clients and the event topic.
const (
	EventReservationCreated    = "reservation.created"
	EventReservationCancelled  = "reservation.cancelled"
	EventReservationCheckedIn  = "reservation.checked_in"
	EventReservationCheckedOut = "reservation.checked_out"
	EventReservationNoShow     = "reservation.no_show"
	EventBlockApproved         = "block_booking.approved"
	EventBlockRejected         = "block_booking.rejected"
	EventReconciliationReport  = "reconciliation.report"
)

type Event struct {
	Type       string    `json:"type"`
	HotelID    uint      `json:"hotelId,omitempty"`
	EntityID   uint      `json:"entityId,omitempty"`
	Message    string    `json:"message"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Key partitions events of one hotel together.
func (e Event) Key() string {
	return fmt.Sprintf("hotel-%d", e.HotelID)
}

// Publisher delivers domain events. Failures never roll back the originating operation.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type MelodyPublisher struct {
	m *melody.Melody
}

func NewMelodyPublisher(m *melody.Melody) *MelodyPublisher {
	return &MelodyPublisher{m: m}
}

func (p *MelodyPublisher) Publish(_ context.Context, e Event) error {
	if p.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.m.Broadcast(b)
}

// MultiPublisher fans an event out to every publisher and joins their errors.
type MultiPublisher []Publisher

func (mp MultiPublisher) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range mp {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type nop struct{}

func (nop) Publish(context.Context, Event) error { return nil }

// Nop drops every event.
func Nop() Publisher { return nop{} }

// Recorder keeps published events in memory, used by tests.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

// Types lists the recorded event names in order.
func (r *Recorder) Types() []string {
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}

type MessageBuilder struct {
	event    string
	entityID uint
	detail   string
}

func NewMessageBuilder(event string, entityID uint) *MessageBuilder {
	return &MessageBuilder{event: event, entityID: entityID}
}

func (b *MessageBuilder) Detail(format string, args ...any) *MessageBuilder {
	b.detail = fmt.Sprintf(format, args...)
	return b
}

func (b *MessageBuilder) Build() string {
	var msg string
	switch b.event {
	case EventReservationCreated:
		msg = fmt.Sprintf("🔔 Đặt phòng #%d đã được tạo", b.entityID)
	case EventReservationCancelled:
		msg = fmt.Sprintf("🔔 Đặt phòng #%d đã bị hủy", b.entityID)
	case EventReservationCheckedIn:
		msg = fmt.Sprintf("🔔 Đặt phòng #%d đã nhận phòng", b.entityID)
	case EventReservationCheckedOut:
		msg = fmt.Sprintf("🔔 Đặt phòng #%d đã trả phòng", b.entityID)
	case EventReservationNoShow:
		msg = fmt.Sprintf("🔔 Đặt phòng #%d không đến nhận phòng", b.entityID)
	case EventBlockApproved:
		msg = fmt.Sprintf("🔔 Đặt phòng đoàn #%d đã được duyệt", b.entityID)
	case EventBlockRejected:
		msg = fmt.Sprintf("🔔 Đặt phòng đoàn #%d đã bị từ chối", b.entityID)
	case EventReconciliationReport:
		msg = "🔔 Báo cáo đối soát hằng ngày"
	default:
		msg = fmt.Sprintf("🔔 %s #%d", b.event, b.entityID)
	}
	if b.detail != "" {
		msg += ": " + b.detail
	}
	return msg
}

// NewEvent stamps an event with a rendered message.
func NewEvent(event string, hotelID, entityID uint, data any) Event {
	return Event{
		Type:       event,
		HotelID:    hotelID,
		EntityID:   entityID,
		Message:    NewMessageBuilder(event, entityID).Build(),
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
