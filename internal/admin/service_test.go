package admin_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/admin"
	"github.com/hostelhub/server/internal/core/events"
	"github.com/hostelhub/server/internal/user"
	"github.com/hostelhub/server/internal/wall"
)

func TestAdminService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admin Service Suite")
}

type mockAdminRepository struct {
	logs   []*admin.AuditLog
	nextID int64
}

func (m *mockAdminRepository) CreateLog(_ context.Context, log *admin.AuditLog) error {
	m.nextID++
	log.ID = m.nextID
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAdminRepository) ListLogs(_ context.Context, limit int) ([]*admin.AuditLog, error) {
	if len(m.logs) > limit {
		return m.logs[:limit], nil
	}
	return m.logs, nil
}

type mockUserAdmin struct {
	users map[int64]*user.User
}

func (m *mockUserAdmin) ListAll() ([]*user.User, error) {
	result := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserAdmin) UpdateRole(targetID int64, dto user.UpdateRoleDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	u, exists := m.users[targetID]
	if !exists {
		return nil, user.ErrUserNotFound
	}
	u.Role = dto.Role
	return u, nil
}

type mockWallModeration struct {
	pending []*wall.Post
}

func (m *mockWallModeration) PendingPosts(_ context.Context) ([]*wall.Post, error) {
	return m.pending, nil
}

var _ = Describe("AdminService", func() {
	var (
		service  *admin.Service
		mockRepo *mockAdminRepository
		users    *mockUserAdmin
		bus      *events.EventBus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = &mockAdminRepository{}
		users = &mockUserAdmin{users: map[int64]*user.User{
			1: {ID: 1, Name: "Asha", Role: user.RoleAdmin},
			2: {ID: 2, Name: "Ravi", Role: user.RoleUser},
		}}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		service = admin.NewService(mockRepo, users, &mockWallModeration{}, bus, logger)
		service.RegisterAuditRecorder()
		ctx = context.Background()
	})

	Describe("audit recorder", func() {
		It("should persist audited events", func() {
			err := bus.PublishSync(ctx, events.NewAuditEvent(events.EventPostApproved, 1, 42, "approved wall post"))
			Expect(err).ToNot(HaveOccurred())

			logs, err := service.AuditTrail(ctx, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].EventType).To(Equal(events.EventPostApproved))
			Expect(logs[0].ActorID).To(Equal(int64(1)))
			Expect(logs[0].TargetID).To(Equal(int64(42)))
		})

		It("should record every audited event type", func() {
			for _, eventType := range []string{
				events.EventPostApproved,
				events.EventPostDeleted,
				events.EventUserRoleUpdated,
				events.EventMenuPublished,
				events.EventEntrySettled,
			} {
				err := bus.PublishSync(ctx, events.NewAuditEvent(eventType, 1, 2, "test"))
				Expect(err).ToNot(HaveOccurred())
			}

			logs, err := service.AuditTrail(ctx, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(logs).To(HaveLen(5))
		})
	})

	Describe("UpdateRole", func() {
		It("should promote a resident and log the change", func() {
			updated, err := service.UpdateRole(ctx, 1, 2, user.UpdateRoleDTO{Role: user.RoleAdmin})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(user.RoleAdmin))

			Eventually(func() int {
				logs, _ := service.AuditTrail(ctx, 10)
				return len(logs)
			}, time.Second, 10*time.Millisecond).Should(Equal(1))
		})

		It("should reject an invalid role", func() {
			_, err := service.UpdateRole(ctx, 1, 2, user.UpdateRoleDTO{Role: "owner"})
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for a missing user", func() {
			_, err := service.UpdateRole(ctx, 1, 99, user.UpdateRoleDTO{Role: user.RoleAdmin})
			Expect(err).To(Equal(user.ErrUserNotFound))
		})
	})
})
