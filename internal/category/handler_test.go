package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hostelhub/server/internal/category"
	categoryPostgres "github.com/hostelhub/server/internal/category/postgres"
	"github.com/hostelhub/server/internal/transport"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		service *category.Service
		handler *category.Handler
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&category.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo := categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
		handler = category.NewHandler(transport.NewBaseHandler(slogger), service)

		Expect(service.EnsureDefaults()).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	It("should serve the seeded roster", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		rec := httptest.NewRecorder()

		handler.GetCategories(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))

		var body category.CategoriesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Categories).To(HaveLen(5))

		names := make([]string, 0, len(body.Categories))
		for _, c := range body.Categories {
			names = append(names, c.Name)
		}
		Expect(names).To(ContainElements("food", "utilities", "entertainment", "groceries", "other"))
	})

	It("should not serve deactivated categories", func() {
		err := db.Model(&category.Category{}).Where("name = ?", "other").Update("is_active", false).Error
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
		rec := httptest.NewRecorder()

		handler.GetCategories(rec, req)

		var body category.CategoriesResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Categories).To(HaveLen(4))
	})
})
