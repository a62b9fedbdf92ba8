package event_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/event"
)

func TestEventService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Service Suite")
}

type mockEventRepository struct {
	events map[int64]*event.Event
	nextID int64
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events: make(map[int64]*event.Event),
		nextID: 1,
	}
}

func (m *mockEventRepository) Create(_ context.Context, e *event.Event) error {
	e.ID = m.nextID
	m.nextID++
	e.CreatedAt = time.Now()
	m.events[e.ID] = e
	return nil
}

func (m *mockEventRepository) GetByID(_ context.Context, id int64) (*event.Event, error) {
	e, exists := m.events[id]
	if !exists {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}

func (m *mockEventRepository) ListUpcoming(_ context.Context) ([]*event.Event, error) {
	result := make([]*event.Event, 0)
	now := time.Now()
	for _, e := range m.events {
		if e.StartsAt.After(now) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEventRepository) Update(_ context.Context, e *event.Event) error {
	m.events[e.ID] = e
	return nil
}

var _ = Describe("EventService", func() {
	var (
		service  *event.Service
		mockRepo *mockEventRepository
		ctx      context.Context

		alice int64 = 1
		bob   int64 = 2
		carol int64 = 3
	)

	newDTO := func(maxAttendees int) event.CreateEventDTO {
		return event.CreateEventDTO{
			Title:        "movie night",
			Location:     "common room",
			StartsAt:     time.Now().Add(48 * time.Hour),
			MaxAttendees: maxAttendees,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockEventRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = event.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should create the event with the organizer attending", func() {
			e, err := service.Create(ctx, alice, newDTO(0))

			Expect(err).ToNot(HaveOccurred())
			Expect(e.CreatedBy).To(Equal(alice))
			Expect(e.Attendees.Contains(alice)).To(BeTrue())
		})

		It("should default the event type to other", func() {
			e, err := service.Create(ctx, alice, newDTO(0))

			Expect(err).ToNot(HaveOccurred())
			Expect(e.Type).To(Equal(event.TypeOther))
		})

		It("should keep a recognized event type", func() {
			dto := newDTO(0)
			dto.Type = event.TypeSports
			e, err := service.Create(ctx, alice, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(e.Type).To(Equal(event.TypeSports))
		})

		It("should reject an unknown event type", func() {
			dto := newDTO(0)
			dto.Type = "rave"
			_, err := service.Create(ctx, alice, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should reject an empty title", func() {
			dto := newDTO(0)
			dto.Title = ""
			_, err := service.Create(ctx, alice, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should reject a start time in the past", func() {
			dto := newDTO(0)
			dto.StartsAt = time.Now().Add(-time.Hour)
			_, err := service.Create(ctx, alice, dto)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Join", func() {
		It("should add an attendee", func() {
			e, err := service.Create(ctx, alice, newDTO(0))
			Expect(err).ToNot(HaveOccurred())

			e, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Attendees.Contains(bob)).To(BeTrue())
		})

		It("should treat a repeat join as a no-op", func() {
			e, err := service.Create(ctx, alice, newDTO(0))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())
			e, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Attendees).To(HaveLen(2))
		})

		It("should reject joining a full event", func() {
			e, err := service.Create(ctx, alice, newDTO(2))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, carol)
			Expect(err).To(Equal(event.ErrEventFull))
		})

		It("should return not found for a missing event", func() {
			_, err := service.Join(ctx, 404, bob)
			Expect(err).To(Equal(event.ErrEventNotFound))
		})
	})

	Describe("Leave", func() {
		It("should remove an attendee", func() {
			e, err := service.Create(ctx, alice, newDTO(0))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())

			e, err = service.Leave(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Attendees.Contains(bob)).To(BeFalse())
		})

		It("should keep the organizer on the list", func() {
			e, err := service.Create(ctx, alice, newDTO(0))
			Expect(err).ToNot(HaveOccurred())

			e, err = service.Leave(ctx, e.ID, alice)
			Expect(err).ToNot(HaveOccurred())
			Expect(e.Attendees.Contains(alice)).To(BeTrue())
		})

		It("should free a seat on a full event", func() {
			e, err := service.Create(ctx, alice, newDTO(2))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.Leave(ctx, e.ID, bob)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Join(ctx, e.ID, carol)
			Expect(err).ToNot(HaveOccurred())
		})
	})
})
