package notifications

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

// KafkaDispatcher отправляет события в Kafka асинхронно.
// Ошибки доставки только логируются и считаются в метриках: бронирование от них не зависит.
type KafkaDispatcher struct {
	writer   *kafka.Writer
	log      Logger
	failures FailureObserver
}

// NewKafkaDispatcher создает диспетчер поверх асинхронного kafka.Writer
func NewKafkaDispatcher(brokers []string, topic string, log Logger, failures FailureObserver) *KafkaDispatcher {
	d := &KafkaDispatcher{log: log, failures: failures}
	d.writer = &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion:             d.onCompletion,
	}
	return d
}

// Dispatch ставит событие в очередь отправки и сразу возвращает управление
func (d *KafkaDispatcher) Dispatch(ctx context.Context, event Event) {
	msg, err := buildMessage(event)
	if err != nil {
		d.log.Error("Notifications: failed to encode event %s id=%s: %v", event.Type, event.ID, err)
		d.observeFailure(string(event.Type))
		return
	}

	// в асинхронном режиме WriteMessages не ждёт брокера
	if err := d.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		d.log.Error("Notifications: failed to enqueue event %s id=%s: %v", event.Type, event.ID, err)
		d.observeFailure(string(event.Type))
	}
}

// Close дожидается отправки буфера и закрывает соединения
func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

func (d *KafkaDispatcher) onCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		eventType := headerValue(m, "event_type")
		d.log.Error("Notifications: delivery failed for event %s id=%s: %v", eventType, headerValue(m, "event_id"), err)
		d.observeFailure(eventType)
	}
}

func (d *KafkaDispatcher) observeFailure(eventType string) {
	if d.failures != nil {
		d.failures.ObserveNotificationFailure(eventType)
	}
}

// buildMessage ключ сообщения - ID практикующего, чтобы события одного расписания шли по порядку
func buildMessage(event Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.PractitionerID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
		Time: event.OccurredAt,
	}, nil
}

func headerValue(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// LogDispatcher пишет события в лог, когда брокеры не настроены
type LogDispatcher struct {
	log Logger
}

// NewLogDispatcher создает диспетчер, который только логирует события
func NewLogDispatcher(log Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

// Dispatch логирует событие
func (d *LogDispatcher) Dispatch(_ context.Context, event Event) {
	d.log.Info("Notifications: %s id=%s appointment=%d status=%s payment=%s",
		event.Type, event.ID, event.AppointmentID, event.Status, event.PaymentStatus)
}

// Close ничего не делает
func (d *LogDispatcher) Close() error {
	return nil
}
