package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/wsqfx/internal/config"
	"github.com/rockstardevs/wsqfx/internal/dom"
	"github.com/rockstardevs/wsqfx/internal/server"
	"github.com/rockstardevs/wsqfx/internal/sink/mock_sink"
)

const page = `<html><body><main>
<h2>January 5, 2024</h2>
<div>
  <div><button><div><div><div></div><div><p>Withdrawal</p></div></div><p>−$50.00 CAD</p></div></button></div>
  <div><div><div>
    <div><div><p>From</p></div><div><div><p>Chequing</p></div></div></div>
    <div><div><p>To</p></div><div><div><p>Landlord</p></div></div></div>
  </div></div></div>
</div>
</main></body></html>`

var _ = Describe("Server", func() {
	var (
		ctrl    *gomock.Controller
		srv     *server.Server
		handler http.Handler
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		cfg, err := config.Load("")
		Expect(err).To(BeNil())
		cfg.Chequing.ExpandDelay = 0
		cfg.Chequing.CollapseDelay = 0
		srv = &server.Server{
			Config:  cfg,
			Settler: dom.Delay{},
			Now:     func() time.Time { return time.Date(2024, 1, 8, 9, 30, 0, 0, time.Local) },
		}
		handler = srv.Handler()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "text/html")
		handler.ServeHTTP(w, req)
		return w
	}

	errorOf := func(w *httptest.ResponseRecorder) string {
		var body map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body["error"]
	}

	It("should report the start time it was given", func() {
		started := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
		srv.Started = started
		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
			var body struct {
				Started time.Time `json:"started"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Started).To(BeTemporally("==", started))
		}
		Expect(srv.Started).To(Equal(started))
	})

	It("should report its status", func() {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
		Expect(w.Code).To(Equal(http.StatusOK))
		var body struct {
			Status   string   `json:"status"`
			Variants []string `json:"variants"`
			Archive  bool     `json:"archive"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Status).To(Equal("ok"))
		Expect(body.Variants).To(Equal([]string{"chequing", "creditcard"}))
		Expect(body.Archive).To(BeFalse())
	})

	It("should answer with the statement as an attachment", func() {
		w := post("/v1/statements/chequing", page)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/x-ofx"))
		Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="bank-transactions-20240108.qfx"`))
		Expect(w.Header().Get("X-Transaction-Count")).To(Equal("1"))
		Expect(w.Body.String()).To(HavePrefix("OFXHEADER:100\n"))
		Expect(w.Body.String()).To(ContainSubstring("<NAME>Landlord\n"))
		Expect(w.Body.String()).To(ContainSubstring("<FITID>20240105LANDLORD5000\n"))
	})

	It("should archive the statement when configured", func() {
		archive := mock_sink.NewMockSink(ctrl)
		archive.EXPECT().
			Export(gomock.Any(), "bank-transactions-20240108.qfx", gomock.Any()).
			Return("gs://bucket/bank-transactions-20240108.qfx", nil)
		srv.Archive = archive

		w := post("/v1/statements/chequing", page)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("X-Statement-Location")).To(Equal("gs://bucket/bank-transactions-20240108.qfx"))
	})

	It("should not answer with a statement it failed to archive", func() {
		archive := mock_sink.NewMockSink(ctrl)
		archive.EXPECT().Export(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("denied"))
		srv.Archive = archive

		w := post("/v1/statements/chequing", page)
		Expect(w.Code).To(Equal(http.StatusBadGateway))
		Expect(errorOf(w)).To(Equal("denied"))
	})

	It("should reject a page without transactions", func() {
		w := post("/v1/statements/creditcard", page)
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(errorOf(w)).To(Equal("no transactions found"))
	})

	It("should reject an unknown variant", func() {
		w := post("/v1/statements/savings", page)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(errorOf(w)).To(Equal(`unknown variant "savings"`))
	})
})
