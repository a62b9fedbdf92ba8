package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hostelhub/server/internal/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

type mockCategoryRepository struct {
	categories map[string]*category.Category
	getError   error
	seedError  error
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[string]*category.Category),
	}
}

func (m *mockCategoryRepository) GetAll() ([]*category.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*category.Category, 0, len(m.categories))
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCategoryRepository) GetByName(name string) (*category.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.categories[name], nil
}

func (m *mockCategoryRepository) Create(c *category.Category) error {
	m.categories[c.Name] = c
	return nil
}

func (m *mockCategoryRepository) Seed(defaults []*category.Category) error {
	if m.seedError != nil {
		return m.seedError
	}
	for _, c := range defaults {
		if _, exists := m.categories[c.Name]; !exists {
			m.categories[c.Name] = c
		}
	}
	return nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
	)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, logger)
	})

	Describe("GetAllCategories", func() {
		It("should return only active categories", func() {
			mockRepo.categories["food"] = &category.Category{Name: "food", Label: "Food", Emoji: "🍕", IsActive: true}
			mockRepo.categories["retired"] = &category.Category{Name: "retired", Label: "Retired", IsActive: false}

			categories, err := service.GetAllCategories()

			Expect(err).ToNot(HaveOccurred())
			Expect(categories).To(HaveLen(1))
			Expect(categories[0].Name).To(Equal("food"))
			Expect(categories[0].Emoji).To(Equal("🍕"))
		})

		It("should propagate repository errors", func() {
			mockRepo.getError = errors.New("db down")

			_, err := service.GetAllCategories()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("IsValidCategory", func() {
		BeforeEach(func() {
			Expect(service.EnsureDefaults()).To(Succeed())
		})

		It("should accept a seeded category", func() {
			Expect(service.IsValidCategory("groceries")).To(BeTrue())
		})

		It("should reject an unknown category", func() {
			Expect(service.IsValidCategory("gambling")).To(BeFalse())
		})

		It("should reject an inactive category", func() {
			mockRepo.categories["food"].IsActive = false
			Expect(service.IsValidCategory("food")).To(BeFalse())
		})
	})

	Describe("EnsureDefaults", func() {
		It("should seed the full roster", func() {
			Expect(service.EnsureDefaults()).To(Succeed())
			Expect(mockRepo.categories).To(HaveLen(5))
		})

		It("should seed every category as active", func() {
			Expect(service.EnsureDefaults()).To(Succeed())
			for name, c := range mockRepo.categories {
				Expect(c.IsActive).To(BeTrue(), "category %s should be active", name)
			}
		})

		It("should be idempotent", func() {
			Expect(service.EnsureDefaults()).To(Succeed())
			Expect(service.EnsureDefaults()).To(Succeed())
			Expect(mockRepo.categories).To(HaveLen(5))
		})
	})
})
