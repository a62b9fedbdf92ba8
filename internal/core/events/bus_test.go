package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Bus Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	Describe("Publish", func() {
		It("should deliver the event to every subscribed handler", func() {
			delivered := make(chan string, 2)
			bus.Subscribe(events.EventEntrySettled, func(_ context.Context, e events.Event) error {
				delivered <- e.EventID()
				return nil
			})
			bus.Subscribe(events.EventEntrySettled, func(_ context.Context, e events.Event) error {
				delivered <- e.EventID()
				return nil
			})

			event := events.NewAuditEvent(events.EventEntrySettled, 1, 42, "settled share of dinner")
			Expect(bus.Publish(context.Background(), event)).To(Succeed())

			Eventually(delivered).Should(Receive(Equal(event.EventID())))
			Eventually(delivered).Should(Receive(Equal(event.EventID())))
		})

		It("should run handlers to completion after the publishing context is cancelled", func() {
			handlerCtxErr := make(chan error, 1)
			bus.Subscribe(events.EventPostDeleted, func(hctx context.Context, _ events.Event) error {
				handlerCtxErr <- hctx.Err()
				return nil
			})

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			event := events.NewAuditEvent(events.EventPostDeleted, 1, 7, "removed post")
			Expect(bus.Publish(ctx, event)).To(Succeed())

			Eventually(handlerCtxErr).Should(Receive(BeNil()))
		})

		It("should do nothing when no handler is subscribed", func() {
			event := events.NewAuditEvent(events.EventMenuPublished, 1, 1, "published menu")
			Expect(bus.Publish(context.Background(), event)).To(Succeed())
		})
	})

	Describe("PublishSync", func() {
		It("should surface a handler failure to the publisher", func() {
			bus.Subscribe(events.EventUserRoleUpdated, func(_ context.Context, _ events.Event) error {
				return errors.New("recorder unavailable")
			})

			event := events.NewAuditEvent(events.EventUserRoleUpdated, 1, 2, "promoted to admin")
			err := bus.PublishSync(context.Background(), event)
			Expect(err).To(HaveOccurred())
		})
	})
})
