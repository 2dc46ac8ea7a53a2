package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"neuroscan_backend/internal/domain"
	"neuroscan_backend/internal/middleware"
	"neuroscan_backend/internal/service"
	"neuroscan_backend/internal/store"
	"neuroscan_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// noopNotifier satisfies notify.Notifier; delivery behavior is covered by the
// service tests.
type noopNotifier struct{}

func (noopNotifier) NotifyResultReady(context.Context, string, string) error { return nil }

type resultFixture struct {
	router  *gin.Engine
	db      *gorm.DB
	users   *store.UserStore
	results *store.ResultStore
	doctor  *domain.User
	patient *domain.User
}

// newResultFixture wires the full result surface the way cmd/server does,
// minus Redis (handlers treat a nil client as cache-off).
func newResultFixture(t *testing.T, name string) *resultFixture {
	t.Helper()
	db := newTestDB(t, name)
	users := store.NewUserStore(db)
	results := store.NewResultStore(db)
	svc := service.NewResultService(users, results, noopNotifier{})

	r := gin.New()
	group := r.Group("/result")
	group.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	group.POST("/save", middleware.DoctorOnlyMiddleware(db), SaveResultHandler(svc, nil))
	group.GET("/doctor/:username", middleware.DoctorOnlyMiddleware(db), DoctorResultsHandler(svc, nil))
	group.GET("/patient/:username", PatientResultsHandler(svc, nil))

	doctor := seedUser(t, users, domain.RoleDoctor, "Dime", "Ristov", "d@x.com", "secretpw1", "456")
	patient := seedUser(t, users, domain.RolePatient, "Ana", "Petrova", "p@x.com", "secretpw2", "123")
	return &resultFixture{router: r, db: db, users: users, results: results, doctor: doctor, patient: patient}
}

func (f *resultFixture) token(t *testing.T, u *domain.User) string {
	t.Helper()
	token, err := utils.GenerateJWT(u.ID, u.Role, testJWTSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestSaveResult(t *testing.T) {
	f := newResultFixture(t, "results_save")

	w := doJSON(t, f.router, http.MethodPost, "/result/save", f.token(t, f.doctor), gin.H{
		"confidence":     0.92,
		"classification": "glioma",
		"modelUsed":      "modelA",
		"notes":          "note",
		"patientEmbg":    "123",
		"doctorEmail":    "d@x.com",
	})
	expectStatus(t, w, http.StatusOK)

	var r domain.Result
	decode(t, w, &r)
	if r.ID == 0 || r.Classification != "glioma" || r.Confidence != 0.92 {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r.Patient.Email != "p@x.com" || r.Doctor.Email != "d@x.com" {
		t.Fatalf("unexpected references: %+v", r)
	}
	if got, want := r.Date.Format("2006-01-02"), time.Now().Format("2006-01-02"); got != want {
		t.Fatalf("date = %s, want %s", got, want)
	}
}

func TestSaveResult_UnknownIdentities(t *testing.T) {
	f := newResultFixture(t, "results_save_missing")
	token := f.token(t, f.doctor)

	// Unknown doctor email
	w := doJSON(t, f.router, http.MethodPost, "/result/save", token, gin.H{
		"classification": "glioma", "modelUsed": "modelA", "patientEmbg": "123", "doctorEmail": "ghost@x.com",
	})
	expectStatus(t, w, http.StatusNotFound)

	// Unknown patient embg
	w = doJSON(t, f.router, http.MethodPost, "/result/save", token, gin.H{
		"classification": "glioma", "modelUsed": "modelA", "patientEmbg": "999", "doctorEmail": "d@x.com",
	})
	expectStatus(t, w, http.StatusNotFound)

	// No partial writes
	n, err := f.results.Count(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("expected empty result store, got n=%d err=%v", n, err)
	}
}

func TestSaveResult_RequiresDoctorRole(t *testing.T) {
	f := newResultFixture(t, "results_save_role")

	body := gin.H{"classification": "glioma", "modelUsed": "modelA", "patientEmbg": "123", "doctorEmail": "d@x.com"}

	// No token at all
	expectStatus(t, doJSON(t, f.router, http.MethodPost, "/result/save", "", body), http.StatusUnauthorized)

	// Patient token
	expectStatus(t, doJSON(t, f.router, http.MethodPost, "/result/save", f.token(t, f.patient), body), http.StatusForbidden)
}

type listingResponse struct {
	Results []domain.Result `json:"results"`
	Cached  bool            `json:"cached"`
}

func TestResultListings(t *testing.T) {
	f := newResultFixture(t, "results_listings")
	doctorToken := f.token(t, f.doctor)
	patientToken := f.token(t, f.patient)

	// A second patient to prove scoping
	seedUser(t, f.users, domain.RolePatient, "Eva", "Ilieva", "e@x.com", "secretpw3", "789")

	save := func(embg string) {
		t.Helper()
		w := doJSON(t, f.router, http.MethodPost, "/result/save", doctorToken, gin.H{
			"classification": "glioma", "modelUsed": "modelA", "patientEmbg": embg, "doctorEmail": "d@x.com",
		})
		expectStatus(t, w, http.StatusOK)
	}
	save("123")
	save("789")

	w := doJSON(t, f.router, http.MethodGet, "/result/doctor/d@x.com", doctorToken, nil)
	expectStatus(t, w, http.StatusOK)
	var byDoctor listingResponse
	decode(t, w, &byDoctor)
	if len(byDoctor.Results) != 2 {
		t.Fatalf("doctor listing len = %d, want 2", len(byDoctor.Results))
	}

	w = doJSON(t, f.router, http.MethodGet, "/result/patient/p@x.com", patientToken, nil)
	expectStatus(t, w, http.StatusOK)
	var byPatient listingResponse
	decode(t, w, &byPatient)
	if len(byPatient.Results) != 1 || byPatient.Results[0].Patient.Email != "p@x.com" {
		t.Fatalf("patient listing: %+v", byPatient.Results)
	}
}

func TestResultListings_UnknownUser(t *testing.T) {
	f := newResultFixture(t, "results_listings_missing")

	w := doJSON(t, f.router, http.MethodGet, "/result/doctor/ghost@x.com", f.token(t, f.doctor), nil)
	expectStatus(t, w, http.StatusNotFound)

	w = doJSON(t, f.router, http.MethodGet, "/result/patient/ghost@x.com", f.token(t, f.patient), nil)
	expectStatus(t, w, http.StatusNotFound)
}
