package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hostelhub/server/internal/category"
)

func TestCategoryRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Repository Suite")
}

var _ = Describe("CategoryRepository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&category.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewCategoryRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Seed", func() {
		It("should insert the defaults once", func() {
			Expect(repo.Seed(category.Defaults())).To(Succeed())
			Expect(repo.Seed(category.Defaults())).To(Succeed())

			all, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(5))
		})
	})

	Describe("GetByName", func() {
		BeforeEach(func() {
			Expect(repo.Seed(category.Defaults())).To(Succeed())
		})

		It("should find a seeded category", func() {
			cat, err := repo.GetByName("utilities")
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).NotTo(BeNil())
			Expect(cat.Label).To(Equal("Utilities"))
		})

		It("should return nil for an unknown name", func() {
			cat, err := repo.GetByName("nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).To(BeNil())
		})
	})
})
