package presence_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/presence"
	"github.com/hostelhub/server/internal/user"
)

func TestPresenceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Presence Service Suite")
}

// memoryStore is a map-backed Store for tests, applying the same
// online/away thresholds as the Redis implementation.
type memoryStore struct {
	lastSeen   map[int64]time.Time
	onlineTTL  time.Duration
	awayWindow time.Duration
	now        time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		lastSeen:   make(map[int64]time.Time),
		onlineTTL:  5 * time.Minute,
		awayWindow: 30 * time.Minute,
		now:        time.Now(),
	}
}

func (m *memoryStore) Heartbeat(_ context.Context, userID int64) error {
	m.lastSeen[userID] = m.now
	return nil
}

func (m *memoryStore) Get(_ context.Context, userID int64) (*presence.Presence, error) {
	seen, ok := m.lastSeen[userID]
	if !ok || m.now.Sub(seen) > m.awayWindow {
		return &presence.Presence{UserID: userID, Status: presence.StatusOffline}, nil
	}
	status := presence.StatusAway
	if m.now.Sub(seen) <= m.onlineTTL {
		status = presence.StatusOnline
	}
	return &presence.Presence{UserID: userID, Status: status, LastSeen: &seen}, nil
}

func (m *memoryStore) GetMany(ctx context.Context, userIDs []int64) (map[int64]*presence.Presence, error) {
	result := make(map[int64]*presence.Presence, len(userIDs))
	for _, id := range userIDs {
		p, _ := m.Get(ctx, id)
		result[id] = p
	}
	return result, nil
}

type mockDirectory struct {
	owls     []*user.User
	lastSeen map[int64]bool
}

func (m *mockDirectory) NightOwls() ([]*user.User, error) {
	return m.owls, nil
}

func (m *mockDirectory) TouchLastSeen(id int64) error {
	m.lastSeen[id] = true
	return nil
}

var _ = Describe("PresenceService", func() {
	var (
		service *presence.Service
		store   *memoryStore
		users   *mockDirectory
		ctx     context.Context
	)

	BeforeEach(func() {
		store = newMemoryStore()
		users = &mockDirectory{
			owls: []*user.User{
				{ID: 1, Name: "Asha", IsNightOwl: true},
				{ID: 2, Name: "Ravi", IsNightOwl: true},
			},
			lastSeen: make(map[int64]bool),
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = presence.NewService(store, users, logger)
		ctx = context.Background()
	})

	Describe("Heartbeat", func() {
		It("should mark the user online and stamp last seen", func() {
			Expect(service.Heartbeat(ctx, 1)).To(Succeed())

			p, err := service.Status(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Status).To(Equal(presence.StatusOnline))
			Expect(users.lastSeen[1]).To(BeTrue())
		})
	})

	Describe("Status", func() {
		It("should report offline with no heartbeat", func() {
			p, err := service.Status(ctx, 7)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Status).To(Equal(presence.StatusOffline))
			Expect(p.LastSeen).To(BeNil())
		})

		It("should decay to away after the online window", func() {
			Expect(service.Heartbeat(ctx, 1)).To(Succeed())
			store.now = store.now.Add(10 * time.Minute)

			p, err := service.Status(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Status).To(Equal(presence.StatusAway))
		})

		It("should decay to offline after the away window", func() {
			Expect(service.Heartbeat(ctx, 1)).To(Succeed())
			store.now = store.now.Add(time.Hour)

			p, err := service.Status(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(p.Status).To(Equal(presence.StatusOffline))
		})
	})

	Describe("NightOwls", func() {
		It("should overlay live presence on the roster", func() {
			Expect(service.Heartbeat(ctx, 1)).To(Succeed())

			owls, err := service.NightOwls(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(owls).To(HaveLen(2))

			byID := map[int64]*presence.NightOwl{}
			for _, o := range owls {
				byID[o.User.ID] = o
			}
			Expect(byID[1].Presence.Status).To(Equal(presence.StatusOnline))
			Expect(byID[2].Presence.Status).To(Equal(presence.StatusOffline))
		})
	})
})
