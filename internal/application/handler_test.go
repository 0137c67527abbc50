package application_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clubware/club-management/internal/application"
	applicationPostgres "github.com/clubware/club-management/internal/application/postgres"
	"github.com/clubware/club-management/internal/transport"
)

// emptyDirectory is a user directory with no accounts, for handler tests that
// only exercise the HTTP surface.
type emptyDirectory struct{}

func (emptyDirectory) EmailExists(string) (bool, error) { return false, nil }
func (emptyDirectory) ProvisionMember(firstName, lastName, email, department, academicYear string) error {
	return nil
}

var _ = Describe("Application Handler Integration", func() {
	var (
		db      *gorm.DB
		service *application.Service
		handler *application.Handler
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&application.Application{})
		Expect(err).NotTo(HaveOccurred())

		repo := applicationPostgres.NewApplicationRepository(db)
		service = application.NewService(repo, emptyDirectory{}, slogger)
		handler = application.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/applications", handler.Submit)
		router.Get("/applications", handler.List)
		router.Get("/applications/{id}", handler.Get)
		router.Patch("/applications/{id}/status", handler.UpdateStatus)
	})

	submitBody := func() []byte {
		body, err := json.Marshal(map[string]any{
			"firstName":           "Ada",
			"lastName":            "Lovelace",
			"email":               "ada@university.edu",
			"preferredDepartment": "it",
		})
		Expect(err).NotTo(HaveOccurred())
		return body
	}

	It("should answer 201 with a submission receipt", func() {
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(submitBody()))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response transport.Envelope
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Success).To(BeTrue())

		data, ok := response.Data.(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(data["id"]).NotTo(BeEmpty())
		Expect(data["email"]).To(Equal("ada@university.edu"))
		Expect(data["status"]).To(Equal("pending"))
	})

	It("should answer 400 with field details for an invalid submission", func() {
		body, err := json.Marshal(map[string]any{"email": "not-an-email"})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var response transport.Envelope
		err = json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Success).To(BeFalse())
		Expect(response.Error).To(Equal("Validation failed"))
		Expect(response.Details).NotTo(BeEmpty())
	})

	It("should answer 409 for a duplicate email", func() {
		first := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(submitBody()))
		router.ServeHTTP(httptest.NewRecorder(), first)

		second := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(submitBody()))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, second)

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("should answer 400 for a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should list applications with pagination metadata", func() {
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(submitBody()))
		router.ServeHTTP(httptest.NewRecorder(), req)

		listReq := httptest.NewRequest(http.MethodGet, "/applications?page=1&limit=10", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, listReq)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response transport.Envelope
		err := json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Count).NotTo(BeNil())
		Expect(*response.Count).To(Equal(1))
		Expect(response.Total).NotTo(BeNil())
		Expect(*response.Total).To(Equal(1))
		Expect(response.Pagination).NotTo(BeNil())
		Expect(response.Pagination.CurrentPage).To(Equal(1))
	})

	It("should answer 404 for an unknown application", func() {
		req := httptest.NewRequest(http.MethodGet, "/applications/missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should move an application through review", func() {
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewReader(submitBody()))
		created := httptest.NewRecorder()
		router.ServeHTTP(created, req)

		var submitted transport.Envelope
		err := json.NewDecoder(created.Body).Decode(&submitted)
		Expect(err).NotTo(HaveOccurred())
		id := submitted.Data.(map[string]any)["id"].(string)

		body, err := json.Marshal(map[string]any{"status": "approved"})
		Expect(err).NotTo(HaveOccurred())

		patch := httptest.NewRequest(http.MethodPatch, "/applications/"+id+"/status", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, patch)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response transport.Envelope
		err = json.NewDecoder(w.Body).Decode(&response)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.Message).To(Equal("Application status updated"))
		Expect(response.Data.(map[string]any)["status"]).To(Equal("approved"))
	})
})
